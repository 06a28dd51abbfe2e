package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"tickertag/classifier"
	"tickertag/clusterer"
	"tickertag/config"
	"tickertag/db"
	"tickertag/eventbus"
	"tickertag/logger"
	"tickertag/models"
	"tickertag/orchestrator"
	"tickertag/repositories"
	"tickertag/rules"
)

func main() {
	force := flag.Bool("force", false, "re-classify events that already have a run for the current taxonomy version")
	asset := flag.String("asset", "", "restrict the batch to one asset id (default: all configured assets)")
	flag.Parse()

	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}

	taxonomy := models.TaxonomyV1()

	model, err := classifier.NewGemini(ctx, taxonomy, classifier.Options{
		ModelName:   cfg.Classifier.ModelName,
		MaxAttempts: cfg.Classifier.MaxAttempts,
		Backoff:     time.Duration(cfg.Classifier.BackoffSeconds) * time.Second,
	})
	if err != nil {
		logger.Log.Errorf("failed to initialize model classifier: %v", err)
		os.Exit(1)
	}

	rawPosts := repositories.NewRawPostRepository(db.Database())
	events := repositories.NewEventRepository(db.Database())
	runs := repositories.NewRunRepository(db.Database())

	orch := orchestrator.New(rules.NewEngine(taxonomy), model, runs, taxonomy, cfg.Classifier.ModelName)
	if cfg.Kafka.Enabled {
		bus, err := eventbus.NewKafkaPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Log.Errorf("failed to initialize kafka publisher: %v", err)
			os.Exit(1)
		}
		defer bus.Close()
		orch.WithPublisher(bus)
	}

	window := time.Duration(cfg.Clustering.WindowMinutes) * time.Minute
	cl := clusterer.New(window)

	hadFailures := false
	for _, src := range cfg.Assets {
		if *asset != "" && src.ID != *asset {
			continue
		}

		posts, err := rawPosts.ListByAsset(ctx, src.ID)
		if err != nil {
			logger.Log.Errorf("asset %s: failed to load raw posts: %v", src.ID, err)
			hadFailures = true
			continue
		}
		if len(posts) == 0 {
			logger.Log.Infof("asset %s: no raw posts, skipping", src.ID)
			continue
		}

		clustered, err := cl.Cluster(src.ID, posts)
		if err != nil {
			// Input-integrity failure: the whole asset run fails, no
			// partial clustering.
			logger.Log.Errorf("asset %s: clustering failed: %v", src.ID, err)
			hadFailures = true
			continue
		}
		for i := range clustered {
			if _, err := events.UpsertByEventID(ctx, &clustered[i]); err != nil {
				logger.Log.Errorf("asset %s: failed to upsert event %s: %v", src.ID, clustered[i].EventID, err)
				hadFailures = true
			}
		}

		summary, err := orch.ClassifyBatch(ctx, clustered, orchestrator.Options{
			Force:       *force,
			Concurrency: cfg.Classifier.Concurrency,
		})
		if err != nil {
			logger.Log.Errorf("asset %s: batch aborted: %v", src.ID, err)
			hadFailures = true
		}
		if !summary.Succeeded() {
			hadFailures = true
		}

		fmt.Printf("asset %s: %d events | classified %d (rule %d, model %d) | skipped %d | failed %d\n",
			src.ID, summary.Total, summary.Classified(), summary.RuleClassified,
			summary.ModelClassified, summary.Skipped, summary.Failed)
		for _, f := range summary.Failures {
			fmt.Printf("  failed event %s: %s\n", f.EventID, f.Reason)
		}
	}

	if hadFailures {
		os.Exit(1)
	}
}
