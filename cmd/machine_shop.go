package cmd

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/simkit/simkit/sim"
	"github.com/simkit/simkit/sim/rng"
	"github.com/simkit/simkit/sim/stats"
)

// shopJob tracks one job through the shop.
type shopJob struct {
	arrival float64
}

// machineShop is the shared state of the single-machine job shop: an
// arrivals process feeds a queue, the machine drains it, and an optional
// breaks process interrupts the machine's service holds.
type machineShop struct {
	cfg MachineShopConfig

	queue       []*shopJob
	operational bool

	totalJobs     int
	processedJobs int
	responseTimes []float64
	activeTime    float64
	failedTime    float64

	meanJobs  *stats.Mean
	queueLoad *stats.TimeVariance
}

// noteQueueLen records the queue length into the time-weighted tracker on
// every change.
func (m *machineShop) noteQueueLen() {
	m.queueLoad.Add(float64(len(m.queue)))
}

// machineBody services jobs until the queue drains, then passivates until
// the arrivals process wakes it. A service hold cut short by an interrupt
// re-queues the job and waits out the repair.
func (m *machineShop) machineBody(e *sim.Entity, service rng.Sampler) {
	for {
		for len(m.queue) > 0 && m.operational {
			m.meanJobs.Add(float64(len(m.queue)))
			activeStart := e.CurrentTime()

			job := m.queue[0]
			m.queue = m.queue[1:]
			m.noteQueueLen()
			e.Hold(service.Sample())

			if e.Interrupted() {
				// machine broke mid-service, job goes back to the head
				m.queue = append([]*shopJob{job}, m.queue...)
				m.noteQueueLen()
				break
			}

			now := e.CurrentTime()
			m.activeTime += now - activeStart
			m.responseTimes = append(m.responseTimes, now-job.arrival)
			m.processedJobs++
		}
		e.Passivate()
	}
}

// arrivalsBody generates jobs and wakes an idle machine.
func (m *machineShop) arrivalsBody(e *sim.Entity, interarrival rng.Sampler, machine *sim.Entity) {
	for {
		e.Hold(interarrival.Sample())
		m.queue = append(m.queue, &shopJob{arrival: e.CurrentTime()})
		m.totalJobs++
		m.noteQueueLen()
		if m.operational {
			machine.Activate()
		}
	}
}

// breaksBody alternates operative periods with failures. A failure
// interrupts the machine's current service hold; the repair done, the
// machine is woken again.
func (m *machineShop) breaksBody(e *sim.Entity, machine *sim.Entity) {
	repair, err := rng.NewUniform(m.cfg.RepairLo, m.cfg.RepairHi, rng.WithStreamSelect(2))
	if err != nil {
		panic(err)
	}
	operative, err := rng.NewUniform(m.cfg.OperativeLo, m.cfg.OperativeHi, rng.WithStreamSelect(3))
	if err != nil {
		panic(err)
	}
	for {
		e.Hold(operative.Sample())

		m.operational = false
		if machine.State() == sim.StateScheduled {
			// cut the current service hold short
			e.Interrupt(machine)
		}

		failed := repair.Sample()
		e.Hold(failed)
		m.failedTime += failed

		m.operational = true
		machine.Activate()
	}
}

// runMachineShop simulates a single machine with exponential arrivals and
// service, optionally subject to failures, and reports throughput and
// response-time summaries.
func runMachineShop(s *sim.Scheduler, cfg *ScenarioConfig) error {
	shop := &machineShop{
		cfg:         cfg.MachineShop,
		operational: true,
		meanJobs:    stats.NewMean(),
		queueLoad:   stats.NewTimeVariance(sim.Now),
	}

	service, err := rng.NewExponential(shop.cfg.MeanService)
	if err != nil {
		return err
	}
	interarrival, err := rng.NewExponential(shop.cfg.MeanArrival, rng.WithStreamSelect(1))
	if err != nil {
		return err
	}

	machine := sim.NewEntity("machine", func(e *sim.Entity) {
		shop.machineBody(e, service)
	})
	arrivals := sim.NewEntity("arrivals", func(e *sim.Entity) {
		shop.arrivalsBody(e, interarrival, machine)
	})

	arrivals.Activate()
	machine.Activate()

	if shop.cfg.Breaks {
		breaks := sim.NewEntity("breaks", func(e *sim.Entity) {
			shop.breaksBody(e, machine)
		})
		breaks.Activate()
	}

	s.RunUntil(cfg.Horizon)
	finalTime := s.Now()

	fmt.Printf("Total number of jobs present %d\n", shop.totalJobs)
	fmt.Printf("Total number of jobs processed %d\n", shop.processedJobs)

	if shop.processedJobs > 0 {
		total := 0.0
		for _, r := range shop.responseTimes {
			total += r
		}
		fmt.Printf("Total response time of %.2f\n", total)
		fmt.Printf("Average response time = %.4f\n", total/float64(shop.processedJobs))

		sorted := append([]float64(nil), shop.responseTimes...)
		sort.Float64s(sorted)
		fmt.Printf("Median response time = %.4f\n", stat.Quantile(0.5, stat.Empirical, sorted, nil))
		fmt.Printf("95th percentile response time = %.4f\n", stat.Quantile(0.95, stat.Empirical, sorted, nil))
	}

	if finalTime > 0 {
		fmt.Printf("Probability that machine is working = %.6f\n", (shop.activeTime-shop.failedTime)/finalTime)
	}
	if shop.activeTime > 0 {
		fmt.Printf("Probability that machine has failed = %.6f\n", shop.failedTime/shop.activeTime)
	}
	shop.queueLoad.Finalize()
	fmt.Printf("Average number of jobs present = %.4f\n", shop.meanJobs.Mean())
	if finalTime > 0 {
		fmt.Printf("Time-weighted queue load = %.4f\n", shop.queueLoad.Sum()/finalTime)
	}
	return nil
}
