package camera

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"

	"gocv.io/x/gocv"

	"github.com/vovakirdan/handflap/internal/tracking"
)

// ScriptName is the MediaPipe hand tracking service looked up on disk.
//
// Protocol: for every frame the detector writes a 4-byte big-endian length
// followed by a JPEG image to the service's stdin, and reads one line of
// JSON from its stdout:
//
//	{"hands":[{"points":[{"x":..,"y":..,"z":..}, ...21],"handedness":"Right","score":0.98}]}
const ScriptName = "hand_service.py"

// MediaPipeDetector implements Detector using a Python MediaPipe subprocess.
type MediaPipeDetector struct {
	config  DetectorConfig
	script  string
	python  string
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  *bufio.Reader
	mu      sync.Mutex
	started bool
}

// NewMediaPipeDetector locates the service. The Python process is started
// lazily on the first detection.
func NewMediaPipeDetector(cfg DetectorConfig) (*MediaPipeDetector, error) {
	script := cfg.Script
	if script == "" {
		script = findScript()
	}
	if script == "" {
		return nil, fmt.Errorf("%s not found", ScriptName)
	}
	if _, err := os.Stat(script); err != nil {
		return nil, fmt.Errorf("detector script: %w", err)
	}

	python := cfg.Python
	if python == "" {
		python = findVenvPython()
	}
	if python == "" {
		python = "python3"
	}

	return &MediaPipeDetector{
		config: cfg,
		script: script,
		python: python,
	}, nil
}

// Detect sends one frame to the service and decodes its answer.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) ([]tracking.HandLandmarks, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureStarted(); err != nil {
		return nil, err
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()

	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := d.stdin.Write(length); err != nil {
		return nil, fmt.Errorf("write length: %w", err)
	}
	if _, err := d.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write data: %w", err)
	}

	line, err := d.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return decodeResponse([]byte(line))
}

// Close shuts down the Python process.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return nil
	}

	err := errors.Join(d.stdin.Close(), d.cmd.Wait())

	d.started = false
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil

	return err
}

// args passes the tracking parameters to the service.
func (d *MediaPipeDetector) args() []string {
	return []string{
		d.script,
		"--max-hands", strconv.Itoa(d.config.MaxHands),
		"--min-detection-confidence", strconv.FormatFloat(d.config.MinDetectionConfidence, 'f', -1, 64),
		"--min-tracking-confidence", strconv.FormatFloat(d.config.MinTrackingConfidence, 'f', -1, 64),
	}
}

func (d *MediaPipeDetector) ensureStarted() error {
	if d.started {
		return nil
	}

	cmd := exec.Command(d.python, d.args()...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// The terminal belongs to the game while it runs
	cmd.Stderr = io.Discard

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start hand tracking service: %w", err)
	}

	d.cmd = cmd
	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.started = true

	return nil
}

// jsonHand is one hand in the service's response.
type jsonHand struct {
	Points     []tracking.Point3D `json:"points"`
	Handedness string             `json:"handedness"`
	Score      float64            `json:"score"`
}

func decodeResponse(line []byte) ([]tracking.HandLandmarks, error) {
	var response struct {
		Hands []jsonHand `json:"hands"`
		Error string     `json:"error"`
	}
	if err := json.Unmarshal(line, &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if response.Error != "" {
		return nil, fmt.Errorf("hand tracking service: %s", response.Error)
	}

	result := make([]tracking.HandLandmarks, len(response.Hands))
	for i, h := range response.Hands {
		result[i].Handedness = h.Handedness
		result[i].Score = h.Score
		copy(result[i].Points[:], h.Points)
	}
	return result, nil
}

func findScript() string {
	var execDir string
	if execPath, err := os.Executable(); err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		filepath.Join("scripts", ScriptName),
		filepath.Join(execDir, "scripts", ScriptName),
		filepath.Join(os.Getenv("HOME"), ".handflap", "scripts", ScriptName),
	}
	return firstExisting(candidates)
}

// findVenvPython looks for a Python interpreter in a virtual environment.
func findVenvPython() string {
	var execDir string
	if execPath, err := os.Executable(); err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".handflap/venv/bin/python"),
	}
	return firstExisting(candidates)
}

func firstExisting(paths []string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return ""
}
