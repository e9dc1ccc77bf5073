package transmitters

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chrissnell/humifix/internal/transmitters/simulator"
	"github.com/chrissnell/humifix/pkg/config"
	"go.uber.org/zap"
)

type stubTransmitter struct {
	name   string
	temp   float64
	hum    float64
	err    error
	delay  time.Duration
	polls  atomic.Int32
	closed bool
}

func (s *stubTransmitter) Name() string           { return s.name }
func (s *stubTransmitter) Identification() string { return "stub " + s.name }
func (s *stubTransmitter) Close() error           { s.closed = true; return nil }

func (s *stubTransmitter) Poll(ctx context.Context) (float64, float64, error) {
	s.polls.Add(1)
	time.Sleep(s.delay)
	return s.temp, s.hum, s.err
}

func TestPollRound(t *testing.T) {
	a := &stubTransmitter{name: "a", temp: 20, hum: 75, delay: 50 * time.Millisecond}
	b := &stubTransmitter{name: "b", err: errors.New("checksum mismatch"), delay: 10 * time.Millisecond}
	c := &stubTransmitter{name: "c", temp: 21, hum: 76}
	set := NewSetFrom([]Transmitter{a, b, c}, zap.NewNop().Sugar())

	readings := set.PollRound(context.Background())

	if len(readings) != 3 {
		t.Fatalf("got %d readings, expected 3", len(readings))
	}
	if !readings[0].OK() || readings[0].Temperature != 20 || readings[0].Transmitter != "a" {
		t.Errorf("reading 1 = %+v", readings[0])
	}
	if readings[1].OK() {
		t.Errorf("reading 2 should carry the poll error")
	}
	if !readings[2].OK() || readings[2].Humidity != 76 {
		t.Errorf("reading 3 = %+v", readings[2])
	}
	for _, s := range []*stubTransmitter{a, b, c} {
		if s.polls.Load() != 1 {
			t.Errorf("transmitter %s polled %d times", s.name, s.polls.Load())
		}
	}
}

func TestSetNamesAndClose(t *testing.T) {
	a := &stubTransmitter{name: "a"}
	b := &stubTransmitter{name: "b"}
	set := NewSetFrom([]Transmitter{a, b}, zap.NewNop().Sugar())

	if names := set.Names(); names[0] != "a" || names[1] != "b" || set.Len() != 2 {
		t.Errorf("Names = %v", names)
	}
	if err := set.Close(); err != nil {
		t.Fatal(err)
	}
	if !a.closed || !b.closed {
		t.Error("not every transmitter was closed")
	}
}

func TestNewSetFromConfig(t *testing.T) {
	cfgs := []config.TransmitterData{
		{Name: "sim1", Type: config.TransmitterTypeSimulator, Simulator: config.SimulatorData{Temperature: 23, Humidity: 75.3, Seed: 1}},
		{Name: "usb0", Type: config.TransmitterTypeSerial, SerialDevice: "/dev/ttyUSB0", Baud: 9600},
	}
	set, err := NewSet(cfgs, zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 2 {
		t.Fatalf("Len = %d", set.Len())
	}
	if _, ok := set.Transmitter(0).(*simulator.Transmitter); !ok {
		t.Errorf("transmitter 1 is %T, expected simulator", set.Transmitter(0))
	}

	if _, err := NewSet([]config.TransmitterData{{Name: "x", Type: "modbus"}}, zap.NewNop().Sugar()); err == nil {
		t.Error("unknown type accepted")
	}
}

func TestSimulator(t *testing.T) {
	sim := simulator.New(config.TransmitterData{
		Name:      "sim",
		Simulator: config.SimulatorData{Temperature: 25, Humidity: 75.3, Offset: 0.8, Noise: 0.01, Seed: 7},
	})

	var tSum, hSum float64
	const n = 400
	for i := 0; i < n; i++ {
		temp, hum, err := sim.Poll(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		tSum += temp
		hSum += hum
	}
	if math.Abs(tSum/n-25) > 0.01 {
		t.Errorf("mean temperature %v, expected about 25", tSum/n)
	}
	if math.Abs(hSum/n-76.1) > 0.01 {
		t.Errorf("mean humidity %v, expected about 76.1", hSum/n)
	}

	dropping := simulator.New(config.TransmitterData{Name: "lossy", Simulator: config.SimulatorData{FailureRate: 1, Seed: 7}})
	if _, _, err := dropping.Poll(context.Background()); !errors.Is(err, simulator.ErrDropped) {
		t.Errorf("Poll error = %v, expected ErrDropped", err)
	}
}

type connectingStub struct {
	stubTransmitter
	connects int
	fail     bool
}

func (c *connectingStub) Connect(context.Context) error {
	c.connects++
	if c.fail {
		return errors.New("no such device")
	}
	return nil
}

func TestSetConnect(t *testing.T) {
	ok := &connectingStub{stubTransmitter: stubTransmitter{name: "ok"}}
	bad := &connectingStub{stubTransmitter: stubTransmitter{name: "bad"}, fail: true}
	plain := &stubTransmitter{name: "plain"}
	set := NewSetFrom([]Transmitter{ok, bad, plain}, zap.NewNop().Sugar())

	set.Connect(context.Background())

	if ok.connects != 1 || bad.connects != 1 {
		t.Errorf("connects: ok %d, bad %d", ok.connects, bad.connects)
	}
	if plain.polls.Load() != 0 {
		t.Error("Connect must not poll")
	}
}
