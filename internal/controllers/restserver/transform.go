package restserver

import (
	"math"

	"github.com/chrissnell/humifix/internal/status"
	"github.com/chrissnell/humifix/internal/summary"
	"github.com/chrissnell/humifix/internal/types"
	"github.com/chrissnell/humifix/pkg/mjd"
	"github.com/chrissnell/humifix/pkg/stats"
)

func number(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func transmitterName(run *types.Run, i int) string {
	if run != nil && i < len(run.Transmitters) {
		return run.Transmitters[i].Name
	}
	return ""
}

func transformStatus(s status.Snapshot) StatusResponse {
	resp := StatusResponse{
		Now:         s.Now.Unix(),
		PeriodCount: s.PeriodCount,
	}
	if run := s.Run; run != nil {
		resp.RunID = run.ID.String()
		resp.Started = run.Start.Unix()
		resp.Salt = run.Salt.String()
		resp.Comment = run.Comment
		resp.Interval = run.IntervalMinutes
		resp.DiscardFirst = run.DiscardFirst
		resp.SummaryHours = run.SummaryHours
		for i, t := range run.Transmitters {
			resp.Transmitters = append(resp.Transmitters, TransmitterInfo{Position: i + 1, Name: t.Name, Identification: t.Identification})
		}
	}
	if s.LastCycle != nil {
		resp.CyclesSeen = s.LastCycle.Number
		resp.WarmingUp = s.LastCycle.Discarded
	} else {
		resp.WarmingUp = true
	}
	for _, h := range s.Health {
		resp.StorageHealth = append(resp.StorageHealth, StorageHealthInfo{
			Engine:    h.Engine,
			Status:    h.Status,
			Message:   h.Message,
			Error:     h.Error,
			LastCheck: h.LastCheck.Unix(),
		})
	}
	return resp
}

func transformCycle(run *types.Run, cs *status.CycleState) CycleResponse {
	c := cs.Cycle
	resp := CycleResponse{
		Number:              cs.Number,
		Discarded:           cs.Discarded,
		Timestamp:           c.Timestamp().UnixMilli(),
		MJD:                 mjd.FromTime(c.Timestamp()),
		Salt:                c.Salt().String(),
		EnsembleTemperature: number(c.EnsembleTemperature()),
		TemperatureRange:    number(c.EnsembleTemperatureRange()),
		TrueHumidity:        number(c.TrueHumidity()),
	}
	for i, t := range c.Transmitters() {
		resp.Transmitters = append(resp.Transmitters, TransmitterReading{
			Position:      i + 1,
			Name:          transmitterName(run, i),
			Temperature:   number(t.Temperature),
			HumidityError: number(t.HumidityError),
		})
	}
	return resp
}

func transformStatistic(s stats.Summary) Statistic {
	return Statistic{
		Count:             s.Count,
		Mean:              number(s.Mean),
		StandardDeviation: number(s.StandardDeviation),
		Range:             number(s.Range),
		Min:               number(s.Min),
		Max:               number(s.Max),
	}
}

func transformSummary(run *types.Run, r *summary.Report) SummaryResponse {
	resp := SummaryResponse{
		Timestamp:           r.LastCycle.UnixMilli(),
		MJD:                 mjd.FromTime(r.LastCycle),
		SampleCount:         r.SampleCount,
		EnsembleTemperature: transformStatistic(r.EnsembleTemperature),
		TemperatureSpread:   transformStatistic(r.TemperatureSpread),
		TrueHumidity:        transformStatistic(r.TrueHumidity),
	}
	for i, t := range r.Transmitters {
		resp.Transmitters = append(resp.Transmitters, TransmitterSummary{
			Position:      i + 1,
			Name:          transmitterName(run, i),
			Temperature:   transformStatistic(t.Temperature),
			HumidityError: transformStatistic(t.HumidityError),
		})
	}
	return resp
}
