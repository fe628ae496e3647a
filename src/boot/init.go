package boot

import (
	"context"
	"log"

	"fbs/src/catalog"
	"fbs/src/common"
	"fbs/src/config"
	"fbs/src/store"

	"github.com/go-co-op/gocron/v2"
)

var scheduler gocron.Scheduler

// NewScheduler replaces the scheduler instance, for tests.
func NewScheduler(s gocron.Scheduler) {
	scheduler = s
}

func GetScheduler() (gocron.Scheduler, error) {
	if scheduler != nil {
		return scheduler, nil
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Error initializing Scheduler: %s\n", err.Error())
		return nil, err
	}
	scheduler = sched
	return sched, nil
}

// InitStore builds the snapshot store (Redis when REDIS_HOST is set, local
// files otherwise), loads every snapshot, and seeds the registries from the
// static catalog on first run.
func InitStore(ctx context.Context) (*store.Store, error) {
	var blobs store.Blobs
	if host := config.RedisHost(); host != "" {
		rb, err := store.NewRedisBlobs(host)
		if err != nil {
			return nil, err
		}
		log.Println("Using Redis snapshot store")
		blobs = rb
	} else {
		fb, err := store.NewFileBlobs(config.SnapshotDir())
		if err != nil {
			return nil, err
		}
		log.Printf("Using file snapshot store in %s\n", config.SnapshotDir())
		blobs = fb
	}

	st := store.New(blobs, nil)
	if err := st.Initialize(ctx, catalog.Rooms(), catalog.Items()); err != nil {
		return nil, err
	}
	return st, nil
}

// InitSweeper schedules the expiry sweep on a fixed cadence with an eager
// first run, then starts the scheduler.
func InitSweeper(st *store.Store) error {
	sched, err := GetScheduler()
	if err != nil {
		return err
	}
	sweeper := common.NewSweeper(st)
	j, err := sched.NewJob(
		gocron.DurationJob(config.SWEEP_INTERVAL),
		gocron.NewTask(func() {
			if _, err := sweeper.Sweep(context.Background()); err != nil {
				log.Printf("[sweeper] Error on sweep: %s\n", err.Error())
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Printf("Error creating sweep job: %s\n", err.Error())
		return err
	}
	log.Printf("Sweep job scheduled: %s every %s\n", j.ID().String(), config.SWEEP_INTERVAL)
	sched.Start()
	return nil
}

func StopScheduler() {
	sched, err := GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Printf("Error shutting down Scheduler: %s\n", err.Error())
	}
}
