package cmd

import (
	"fmt"

	"github.com/simkit/simkit/sim"
	"github.com/simkit/simkit/sim/rng"
)

// bufferStats counts jobs through the bounded buffer.
type bufferStats struct {
	produced int
	consumed int
}

// runProducerConsumer simulates a producer and a consumer around a bounded
// buffer, synchronized with two signal semaphores: the producer blocks when
// the buffer is full, the consumer when it is empty.
func runProducerConsumer(s *sim.Scheduler, cfg *ScenarioConfig) error {
	pc := cfg.ProducerConsumer

	var queue []struct{}
	producerSem := sim.NewSemaphore(0)
	consumerSem := sim.NewSemaphore(0)
	stats := &bufferStats{}

	producerStream, err := rng.NewExponential(pc.MeanInterarrival)
	if err != nil {
		return err
	}
	consumerStream, err := rng.NewExponential(pc.MeanInterarrival, rng.WithStreamSelect(1))
	if err != nil {
		return err
	}

	producer := sim.NewEntity("producer", func(e *sim.Entity) {
		for {
			for len(queue) >= pc.BufferSize {
				producerSem.Get(&e.Process)
			}
			stats.produced++
			queue = append(queue, struct{}{})
			consumerSem.Release()
			e.Hold(producerStream.Sample())
		}
	})

	consumer := sim.NewEntity("consumer", func(e *sim.Entity) {
		for {
			for len(queue) == 0 {
				consumerSem.Get(&e.Process)
			}
			queue = queue[1:]
			producerSem.Release()
			stats.consumed++
			e.Hold(consumerStream.Sample())
		}
	})

	producer.Activate()
	consumer.Activate()
	s.RunUntil(cfg.Horizon)

	fmt.Printf("Total number of jobs present %d\n", stats.produced)
	fmt.Printf("Total number of jobs processed %d\n", stats.consumed)
	return nil
}
