package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"stamina-backend/internal/models"
	"stamina-backend/internal/pipeline"
	"stamina-backend/internal/repository"
	"stamina-backend/internal/services"
	"stamina-backend/internal/websocket"
)

const DeckQueue = "queue:deck-generation"

// Pool pulls deck-generation jobs off the redis queue and runs the full
// pipeline for each: normalize, analyze, compose, generate, validate,
// assemble, save. Progress is published per stage so clients can show a
// live status.
type Pool struct {
	redis       *redis.Client
	generation  *services.GenerationService
	fetch       *services.FetchService
	fileExtract *services.FileExtractService
	deckRepo    *repository.DeckRepo
	jobRepo     *repository.JobRepo
	pipeCfg     pipeline.Config
	storagePath string
	workerCount int
	stopChan    chan struct{}
}

func NewPool(
	redisClient *redis.Client,
	generation *services.GenerationService,
	fetch *services.FetchService,
	fileExtract *services.FileExtractService,
	deckRepo *repository.DeckRepo,
	jobRepo *repository.JobRepo,
	pipeCfg pipeline.Config,
	storagePath string,
	workerCount int,
) *Pool {
	return &Pool{
		redis:       redisClient,
		generation:  generation,
		fetch:       fetch,
		fileExtract: fileExtract,
		deckRepo:    deckRepo,
		jobRepo:     jobRepo,
		pipeCfg:     pipeCfg,
		storagePath: storagePath,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

// DeckJobConfig is the job payload written by the generate handler.
// Exactly one of Text, URL, or FilePath is set.
type DeckJobConfig struct {
	Text       string `json:"text,omitempty"`
	URL        string `json:"url,omitempty"`
	FilePath   string `json:"file_path,omitempty"`
	Origin     string `json:"origin"`
	Vibe       string `json:"vibe"`
	Difficulty string `json:"difficulty"`
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, DeckQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var job models.Job
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Worker %d: failed to parse job: %v", id, err)
			continue
		}

		// Try to acquire lock
		lockKey := fmt.Sprintf("job_lock:%s", job.ID.String())
		locked, err := p.redis.SetNX(ctx, lockKey, "1", 10*time.Minute).Result()
		if err != nil || !locked {
			continue // Another worker has this job
		}

		log.Printf("Worker %d: processing job %s", id, job.ID)

		p.jobRepo.UpdateStatus(ctx, job.ID, "processing")

		if err := p.processDeckGeneration(ctx, &job); err != nil {
			p.handleFailure(ctx, &job, err)
		} else {
			p.handleSuccess(ctx, &job)
		}

		p.redis.Del(ctx, lockKey)
	}
}

func (p *Pool) processDeckGeneration(ctx context.Context, job *models.Job) error {
	var cfg DeckJobConfig
	if err := json.Unmarshal(job.ConfigJSON, &cfg); err != nil {
		return fmt.Errorf("invalid job config: %w", err)
	}

	p.publishStage(ctx, job, pipeline.StageNormalizing, 0)

	source, err := p.resolveSource(ctx, cfg)
	if err != nil {
		return err
	}

	normalized := pipeline.Normalize(source, p.pipeCfg.MaxSourceChars)
	if normalized == "" {
		return fmt.Errorf("source text is empty after normalization")
	}

	p.publishStage(ctx, job, pipeline.StageAnalyzing, 0)
	analysis := pipeline.Analyze(normalized, p.pipeCfg)

	difficulty := cfg.Difficulty
	if difficulty == "" || difficulty == models.DifficultyAuto {
		difficulty = analysis.InferredDifficulty
	}

	p.publishStage(ctx, job, pipeline.StageComposing, 0)
	spec := pipeline.Compose(normalized, cfg.Vibe, analysis.CardTarget, difficulty, analysis.Sections)

	// Rough estimate: generation dominates end-to-end latency and scales
	// with the number of cards requested.
	p.publishStage(ctx, job, pipeline.StageGenerating, 5+analysis.CardTarget)

	cards, err := p.generation.GenerateCards(ctx, spec)
	if err != nil {
		return err
	}

	p.publishStage(ctx, job, pipeline.StageValidating, 2)
	if err := models.ValidateDeckCards(cards); err != nil {
		return fmt.Errorf("%w: %v", services.ErrGeneration, err)
	}

	deck := pipeline.Assemble(normalized, cfg.Vibe, cfg.Origin, cards)
	deck.UserID = job.UserID
	deck.ID = job.ReferenceID

	p.publishStage(ctx, job, pipeline.StageAssembled, 0)

	// A failed save must not cost the user the deck they just waited
	// for: deliver it over the socket either way and flag whether it
	// landed in storage.
	saved := true
	if err := p.deckRepo.Save(ctx, &deck); err != nil {
		saved = false
		log.Printf("Failed to save deck for job %s: %v", job.ID, err)
	}

	websocket.Publish(ctx, p.redis, job.UserID, models.WSMessage{
		Type: "completed",
		Payload: models.CompletedEvent{
			JobID:  job.ID,
			DeckID: deck.ID,
			Saved:  saved,
			Deck:   &deck,
		},
	})

	return nil
}

// resolveSource turns the job config into raw text: pasted text is used
// as-is, URLs are fetched, uploaded files are extracted.
func (p *Pool) resolveSource(ctx context.Context, cfg DeckJobConfig) (string, error) {
	switch {
	case cfg.Text != "":
		return cfg.Text, nil
	case cfg.URL != "":
		return p.fetch.FetchURL(ctx, cfg.URL)
	case cfg.FilePath != "":
		return p.fileExtract.ExtractTextFromPath(filepath.Join(p.storagePath, cfg.FilePath))
	default:
		return "", fmt.Errorf("job config has no source")
	}
}

func (p *Pool) publishStage(ctx context.Context, job *models.Job, stage string, etaSeconds int) {
	websocket.Publish(ctx, p.redis, job.UserID, models.WSMessage{
		Type: "status_update",
		Payload: models.StatusUpdate{
			JobID:                     job.ID,
			Stage:                     stage,
			EstimatedSecondsRemaining: etaSeconds,
		},
	})
}

func (p *Pool) handleSuccess(ctx context.Context, job *models.Job) {
	p.jobRepo.UpdateStatus(ctx, job.ID, "completed")
	log.Printf("Job %s completed successfully", job.ID)
}

func (p *Pool) handleFailure(ctx context.Context, job *models.Job, err error) {
	job.RetryCount++
	errMsg := err.Error()

	maxRetries := job.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	if job.RetryCount < maxRetries {
		log.Printf("Job %s failed (attempt %d): %s — retrying", job.ID, job.RetryCount, errMsg)
		p.jobRepo.UpdateStatus(ctx, job.ID, "pending")
		p.jobRepo.UpdateError(ctx, job.ID, errMsg, job.RetryCount)

		// Re-queue after backoff
		jobBytes, _ := json.Marshal(job)
		backoff := time.Duration(1<<uint(job.RetryCount)) * time.Second
		time.AfterFunc(backoff, func() {
			p.redis.LPush(context.Background(), DeckQueue, string(jobBytes))
		})
		return
	}

	log.Printf("Job %s failed permanently: %s", job.ID, errMsg)
	p.jobRepo.UpdateStatus(ctx, job.ID, "failed")
	p.jobRepo.UpdateError(ctx, job.ID, errMsg, job.RetryCount)

	websocket.Publish(ctx, p.redis, job.UserID, models.WSMessage{
		Type: "error",
		Payload: models.ErrorEvent{
			JobID:        job.ID,
			ErrorCode:    errorCode(err),
			ErrorMessage: errMsg,
		},
	})
}

func errorCode(err error) string {
	var fetchErr *services.FetchError
	switch {
	case errors.As(err, &fetchErr):
		return "FETCH_ERROR"
	case errors.Is(err, services.ErrGeneration):
		return "GENERATION_ERROR"
	default:
		return "JOB_FAILED"
	}
}
