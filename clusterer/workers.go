package main

import (
	"fmt"
	"io"
	"sync"

	actar "github.com/next-exp/actar_go/pkg"
)

type WorkerData struct {
	Batch actar.EventBatch
}

// worker clusters events until jobs is closed. Each worker owns its
// processor, so no clustering state is shared between goroutines.
func worker(id int, jobs <-chan WorkerData, results chan<- actar.EventResult, config actar.Configuration, metrics *actar.Metrics) {
	processor := actar.NewProcessor(config, metrics)
	for job := range jobs {
		if VerbosityLevel > 1 {
			logger.Info(fmt.Sprintf("Worker %d processing event %d", id, job.Batch.EventID), "worker")
		}
		results <- processEvent(processor, job.Batch)
	}
}

// processEvent runs one event and turns failures, panics included, into a
// result flagged as an error.
func processEvent(processor *actar.Processor, batch actar.EventBatch) (result actar.EventResult) {
	defer func() {
		if r := recover(); r != nil {
			errMessage := fmt.Errorf("clusterer recovered from panic on event %d: %v", batch.EventID, r)
			logger.Error(errMessage.Error())
			result = actar.EventResult{EventID: batch.EventID, Error: true}
		}
	}()

	result, err := processor.ProcessEvent(batch)
	if err != nil {
		message := fmt.Errorf("error processing event %d: %w", batch.EventID, err)
		logger.Error(message.Error())
	}
	if result.Error && DiscardErrors {
		logger.Error(fmt.Sprintf("discarding event %d", batch.EventID))
	}
	return result
}

func sendEventsToWorkers(reader *EventReader, jobs chan<- WorkerData) {
	defer close(jobs)
	for {
		batch, err := reader.getNextEvent()
		if err != nil {
			if err != io.EOF {
				message := fmt.Errorf("error reading event: %w", err)
				logger.Error(message.Error())
			}
			return
		}
		jobs <- WorkerData{Batch: batch}
	}
}

// runParallel spreads the events over numWorkers goroutines and hands the
// results to handle in the order they complete.
func runParallel(reader *EventReader, numWorkers int, config actar.Configuration, metrics *actar.Metrics, handle func(actar.EventResult)) {
	jobs := make(chan WorkerData, numWorkers)
	results := make(chan actar.EventResult, 100)

	var wg sync.WaitGroup
	for w := 1; w <= numWorkers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			worker(id, jobs, results, config, metrics)
		}(w)
	}
	go sendEventsToWorkers(reader, jobs)
	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		handle(result)
	}
}

// runSequential processes the events one after the other in file order.
func runSequential(reader *EventReader, config actar.Configuration, metrics *actar.Metrics, handle func(actar.EventResult)) {
	processor := actar.NewProcessor(config, metrics)
	for {
		batch, err := reader.getNextEvent()
		if err != nil {
			if err != io.EOF {
				message := fmt.Errorf("error reading event: %w", err)
				logger.Error(message.Error())
			}
			return
		}
		handle(processEvent(processor, batch))
	}
}
