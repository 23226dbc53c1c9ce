// Package worker translates records received from a message queue.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"

	"github.com/ZaguanLabs/artran"
)

// ErrMalformedJob is returned for messages that cannot be processed at all.
var ErrMalformedJob = errors.New("malformed job")

// Job is a translation request message.
type Job struct {
	Record         *artran.Record `json:"record"`
	TargetLanguage string         `json:"target_language"`
}

// Result is the message published for each processed job.
type Result struct {
	Record       *artran.Record `json:"record"`
	FailedFields []string       `json:"failed_fields,omitempty"`
}

// Publisher sends a message body to a queue.
type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

// Handler decodes jobs and translates their records.
type Handler struct {
	translator *artran.RecordTranslator
}

// NewHandler creates a Handler that translates with t.
func NewHandler(t *artran.RecordTranslator) *Handler {
	return &Handler{translator: t}
}

// Handle processes one message body and returns the encoded Result.
// Field failures are reported in the result, not as an error.
func (h *Handler) Handle(ctx context.Context, body []byte) ([]byte, error) {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJob, err)
	}
	if job.TargetLanguage == "" {
		return nil, fmt.Errorf("%w: missing target_language", ErrMalformedJob)
	}

	res, err := h.translator.TranslateDetailed(ctx, job.Record, job.TargetLanguage)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJob, err)
	}

	out := Result{Record: res.Record}
	for _, f := range res.Failed() {
		name := f.Field
		if f.Index >= 0 {
			name = fmt.Sprintf("%s[%d]", f.Field, f.Index)
		}
		out.FailedFields = append(out.FailedFields, name)
	}

	return json.Marshal(out)
}

// Config controls Run.
type Config struct {
	OutQueue string      // Queue receiving Result messages
	Workers  int         // Concurrent handlers (default: 1)
	Logger   *log.Logger // Default: log.Default()
}

// Run handles deliveries until the channel is closed or ctx is done.
// Malformed jobs are dropped; jobs whose result cannot be published are requeued.
func Run(ctx context.Context, deliveries <-chan amqp.Delivery, h *Handler, pub Publisher, cfg Config) error {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case d, ok := <-deliveries:
					if !ok {
						return nil
					}
					process(ctx, d, h, pub, cfg)
				}
			}
		})
	}
	return g.Wait()
}

func process(ctx context.Context, d amqp.Delivery, h *Handler, pub Publisher, cfg Config) {
	cfg.Logger.Printf("artran: received job: %d bytes", len(d.Body))

	out, err := h.Handle(ctx, d.Body)
	if err != nil {
		cfg.Logger.Printf("artran: dropping job: %v", err)
		if err := d.Nack(false, false); err != nil {
			cfg.Logger.Printf("artran: nack failed: %v", err)
		}
		return
	}

	if err := pub.Publish(ctx, cfg.OutQueue, out); err != nil {
		cfg.Logger.Printf("artran: publishing result: %v", err)
		if err := d.Nack(false, true); err != nil {
			cfg.Logger.Printf("artran: nack failed: %v", err)
		}
		return
	}

	if err := d.Ack(false); err != nil {
		cfg.Logger.Printf("artran: ack failed: %v", err)
	}
}
