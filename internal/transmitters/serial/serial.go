// Package serial drives humidity transmitters that answer an ASCII query on
// a serial line with a single text line holding temperature and humidity,
// for example "T=23.41;RH=75.62" or "RH= 45.2 %RH T= 23.1 'C".
package serial

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chrissnell/humifix/pkg/config"
	goserial "github.com/tarm/goserial"
	"go.uber.org/zap"
)

// ErrTimeout is returned when the transmitter does not answer in time
var ErrTimeout = errors.New("transmitter did not answer in time")

// fieldRE matches a number and the label directly in front of it, if any
var fieldRE = regexp.MustCompile(`([A-Za-z]+)?[\s=:]*([-+]?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?)`)

// Opener opens the serial port described by c
type Opener func(c *goserial.Config) (io.ReadWriteCloser, error)

// Transmitter is a transmitter on a serial port. The port is opened lazily
// and reopened after any I/O failure.
type Transmitter struct {
	config config.TransmitterData
	logger *zap.SugaredLogger
	open   Opener

	mu     sync.Mutex
	rwc    io.ReadWriteCloser
	reader *bufio.Reader
	ident  string
}

// New creates a serial transmitter
func New(cfg config.TransmitterData, logger *zap.SugaredLogger) *Transmitter {
	return NewWithOpener(cfg, logger, goserial.OpenPort)
}

// NewWithOpener creates a serial transmitter that opens its port with open
func NewWithOpener(cfg config.TransmitterData, logger *zap.SugaredLogger, open Opener) *Transmitter {
	return &Transmitter{
		config: cfg,
		logger: logger,
		open:   open,
	}
}

// Name is the configured transmitter name
func (t *Transmitter) Name() string {
	return t.config.Name
}

// Identification is the answer to the identification query, or the serial
// device when none has been received.
func (t *Transmitter) Identification() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ident != "" {
		return t.ident
	}
	return t.config.SerialDevice
}

// Poll sends the measurement query and parses the answer
func (t *Transmitter) Poll(ctx context.Context) (float64, float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.connect(ctx); err != nil {
		return 0, 0, err
	}

	line, err := t.query(ctx, t.config.Query)
	if err != nil {
		t.disconnect()
		return 0, 0, err
	}

	temperature, humidity, err := ParseMeasurement(line)
	if err != nil {
		return 0, 0, fmt.Errorf("transmitter [%s]: %w", t.config.Name, err)
	}
	return temperature, humidity, nil
}

// Connect opens the port and asks for the identification
func (t *Transmitter) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connect(ctx)
}

// Close closes the serial port
func (t *Transmitter) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rwc == nil {
		return nil
	}
	err := t.rwc.Close()
	t.rwc = nil
	t.reader = nil
	return err
}

func (t *Transmitter) connect(ctx context.Context) error {
	if t.rwc != nil {
		return nil
	}

	sc := &goserial.Config{Name: t.config.SerialDevice, Baud: t.config.Baud}
	t.logger.Debugf("opening serial port %s at %d baud", t.config.SerialDevice, t.config.Baud)
	rwc, err := t.open(sc)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", t.config.SerialDevice, err)
	}
	t.rwc = rwc
	t.reader = bufio.NewReader(rwc)

	if t.config.IDQuery != "" && t.ident == "" {
		id, err := t.query(ctx, t.config.IDQuery)
		if err != nil {
			t.logger.Warnf("transmitter [%s] did not identify itself: %v", t.config.Name, err)
			t.disconnect()
			return err
		}
		t.ident = id
		t.logger.Infof("transmitter [%s] identified as %s", t.config.Name, id)
	}
	return nil
}

func (t *Transmitter) disconnect() {
	if t.rwc != nil {
		t.rwc.Close()
	}
	t.rwc = nil
	t.reader = nil
}

type lineResult struct {
	line string
	err  error
}

// query writes q and waits for one answer line. On timeout the caller must
// disconnect, which unblocks the pending read.
func (t *Transmitter) query(ctx context.Context, q string) (string, error) {
	if _, err := io.WriteString(t.rwc, q); err != nil {
		return "", fmt.Errorf("error writing to %s: %w", t.config.SerialDevice, err)
	}

	ch := make(chan lineResult, 1)
	reader := t.reader
	go func() {
		line, err := readLine(reader)
		ch <- lineResult{line: line, err: err}
	}()

	timeout := t.config.ReadTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("error reading from %s: %w", t.config.SerialDevice, r.err)
		}
		return r.line, nil
	case <-timer.C:
		return "", ErrTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// readLine reads up to CR or LF, skipping empty lines
func readLine(r *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '\r' || b == '\n' {
			if sb.Len() == 0 {
				continue
			}
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}

// ParseMeasurement extracts temperature and humidity from an answer line.
// Fields labelled T, TA or TEMP are temperatures and fields labelled RH, H or
// HUM are humidities, in whatever order they appear. Values without a known
// label fill the remaining slots in order, temperature first.
func ParseMeasurement(line string) (temperature, humidity float64, err error) {
	matches := fieldRE.FindAllStringSubmatch(line, -1)

	ti, hi := -1, -1
	for i, m := range matches {
		switch label := strings.ToUpper(m[1]); {
		case ti < 0 && (label == "T" || label == "TA" || strings.HasPrefix(label, "TEMP")):
			ti = i
		case hi < 0 && (label == "H" || label == "RH" || strings.HasPrefix(label, "HUM")):
			hi = i
		}
	}
	for i := range matches {
		if i == ti || i == hi {
			continue
		}
		if ti < 0 {
			ti = i
		} else if hi < 0 {
			hi = i
		}
	}
	if ti < 0 || hi < 0 {
		return 0, 0, fmt.Errorf("cannot parse measurement from %q", line)
	}

	if temperature, err = strconv.ParseFloat(matches[ti][2], 64); err != nil {
		return 0, 0, err
	}
	if humidity, err = strconv.ParseFloat(matches[hi][2], 64); err != nil {
		return 0, 0, err
	}
	return temperature, humidity, nil
}
