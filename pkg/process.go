package actar

import "fmt"

// EventResult is everything produced for one event. Chains index into Hits.
type EventResult struct {
	EventID   int64
	Hits      []Hit
	Chains    []Chain
	Summaries []ChainSummary
	Stats     BuildStats
	Error     bool
}

// Processor runs the point store and the chain builder on successive
// events. It is not safe for concurrent use; give each worker its own.
type Processor struct {
	store   *PointStore
	builder *ChainBuilder
	metrics *Metrics
}

func NewProcessor(config Configuration, metrics *Metrics) *Processor {
	return &Processor{
		store:   NewPointStore(),
		builder: NewChainBuilder(config.Geometry(), config.MinPoints, config.MaxPoints),
		metrics: metrics,
	}
}

func (p *Processor) ProcessEvent(batch EventBatch) (EventResult, error) {
	if err := p.store.Load(batch); err != nil {
		return EventResult{EventID: batch.EventID, Error: true}, err
	}
	hits := p.store.Hits()
	chains, stats := p.builder.BuildWithStats(p.store.CanonicalOrder(), hits)
	p.metrics.Observe(stats)

	result := EventResult{
		EventID:   batch.EventID,
		Hits:      hits,
		Chains:    chains,
		Summaries: SummarizeChains(batch.EventID, chains, hits),
		Stats:     stats,
	}
	p.store.Reset()

	if stats.Rejected != NotRejected && configuration.Verbosity > 0 {
		message := fmt.Sprintf("Event %d rejected (%v): %d points", batch.EventID, stats.Rejected, stats.Points)
		logger.Info(message, "process")
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Event %d: %d points, %d chains, %d duplicates", batch.EventID, stats.Points, stats.Chains, stats.Duplicates)
		logger.Info(message, "process")
	}
	if configuration.Verbosity > 1 {
		for _, chain := range chains {
			message := fmt.Sprintf("Event %d chain %d: %v", batch.EventID, chain.ID, chain.Members)
			logger.Info(message, "process")
		}
	}
	return result, nil
}

func ProcessEventResult(result EventResult, configuration Configuration, writer *Writer) error {
	if !configuration.WriteData || result.Error {
		return nil
	}
	return writer.WriteEvent(&result)
}
