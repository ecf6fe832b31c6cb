package roll

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/dicenotation/internal/core/dice/generator"
	"github.com/louisbranch/dicenotation/internal/core/dice/interpreter"
	"github.com/louisbranch/dicenotation/internal/core/dice/parser"
	"github.com/louisbranch/dicenotation/internal/core/dice/random"
	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
	"github.com/louisbranch/dicenotation/internal/platform/id"
	"github.com/louisbranch/dicenotation/internal/services/roll/storage"
)

const tracerName = "github.com/louisbranch/dicenotation/internal/services/roll"

// Seed sources reported on results.
const (
	SeedSourceClient = "client"
	SeedSourceServer = "server"
)

// Request asks for one roll.
type Request struct {
	Expression string
	// Seed replays a roll when set; otherwise the service draws one.
	Seed *int64
}

// Result is an evaluated roll.
type Result struct {
	ID string
	// Expression is the canonical notation of the request.
	Expression string
	// Detail is the notation with every die replaced by its outcome.
	Detail     string
	Total      float64
	Seed       int64
	SeedSource string
	RolledAt   time.Time
}

// Service evaluates dice expressions and records them.
type Service struct {
	recorder    storage.RollStore
	interpreter *interpreter.Interpreter
	clock       func() time.Time
	newID       func() (string, error)
	newSeed     func() (int64, error)
	tracer      trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder stores every successful roll in store.
func WithRecorder(store storage.RollStore) Option {
	return func(s *Service) { s.recorder = store }
}

// WithInterpreter evaluates rolls with interp.
func WithInterpreter(interp *interpreter.Interpreter) Option {
	return func(s *Service) {
		if interp != nil {
			s.interpreter = interp
		}
	}
}

// WithClock overrides the roll timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator overrides roll ID generation.
func WithIDGenerator(generate func() (string, error)) Option {
	return func(s *Service) {
		if generate != nil {
			s.newID = generate
		}
	}
}

// WithSeedGenerator overrides how seeds are drawn for requests without one.
func WithSeedGenerator(generate func() (int64, error)) Option {
	return func(s *Service) {
		if generate != nil {
			s.newSeed = generate
		}
	}
}

// WithTracerProvider records spans with provider instead of the global one.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(s *Service) {
		if provider != nil {
			s.tracer = provider.Tracer(tracerName)
		}
	}
}

// NewService returns a Service without history unless WithRecorder is given.
func NewService(opts ...Option) *Service {
	s := &Service{
		interpreter: interpreter.New(),
		clock:       time.Now,
		newID:       id.NewID,
		newSeed:     random.NewSeed,
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// recordFailure marks span as failed with the domain code of err and the gRPC
// status code it maps to.
func recordFailure(span trace.Span, err error) {
	code := apperrors.CodeOf(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(
		attribute.String("dice.error_code", string(code)),
		attribute.Int64("rpc.grpc.status_code", int64(code.GRPCCode())),
	)
}

// Roll evaluates req.Expression.
func (s *Service) Roll(ctx context.Context, req Request) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "roll.Roll",
		trace.WithAttributes(attribute.String("dice.expression", req.Expression)),
	)
	defer span.End()

	result, err := s.roll(ctx, req)
	if err != nil {
		recordFailure(span, err)
		return Result{}, err
	}
	span.SetAttributes(
		attribute.String("dice.roll_id", result.ID),
		attribute.String("dice.detail", result.Detail),
		attribute.Float64("dice.total", result.Total),
		attribute.Int64("dice.seed", result.Seed),
		attribute.String("dice.seed_source", result.SeedSource),
	)
	return result, nil
}

func (s *Service) roll(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	seed, source, err := s.seed(req.Seed)
	if err != nil {
		return Result{}, err
	}
	expression, detail, total, err := s.evaluate(req.Expression, seed)
	if err != nil {
		return Result{}, err
	}
	rollID, err := s.newID()
	if err != nil {
		return Result{}, apperrors.Wrap(apperrors.CodeUnknown, "generate roll id", err)
	}

	result := Result{
		ID:         rollID,
		Expression: expression,
		Detail:     detail,
		Total:      total,
		Seed:       seed,
		SeedSource: source,
		RolledAt:   s.clock().UTC(),
	}
	if s.recorder != nil {
		if err := s.recorder.PutRoll(ctx, toRecord(result)); err != nil {
			return Result{}, apperrors.Wrap(apperrors.CodeUnknown, "record roll", err)
		}
	}
	return result, nil
}

// evaluate parses text and rolls it with seed, returning the canonical
// notation, the rolled notation and the total.
func (s *Service) evaluate(text string, seed int64) (string, string, float64, error) {
	tree, err := parser.Parse(text)
	if err != nil {
		return "", "", 0, err
	}
	expression, err := generator.Generate(tree)
	if err != nil {
		return "", "", 0, err
	}
	total, err := s.interpreter.Evaluate(tree, random.New(seed))
	if err != nil {
		return "", "", 0, err
	}
	detail, err := generator.Generate(tree)
	if err != nil {
		return "", "", 0, err
	}
	return expression, detail, total, nil
}

func (s *Service) seed(requested *int64) (int64, string, error) {
	if requested != nil {
		return *requested, SeedSourceClient, nil
	}
	seed, err := s.newSeed()
	if err != nil {
		return 0, "", apperrors.Wrap(apperrors.CodeSeedUnavailable, "draw seed", err)
	}
	return seed, SeedSourceServer, nil
}

// History lists up to limit recorded rolls, newest first. A service without
// a recorder has no history.
func (s *Service) History(ctx context.Context, limit int) ([]Result, error) {
	if s.recorder == nil {
		return nil, nil
	}
	records, err := s.recorder.ListRolls(ctx, limit)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(records))
	for _, record := range records {
		results = append(results, fromRecord(record))
	}
	return results, nil
}

// Replay re-evaluates a recorded roll with its stored seed. The returned
// result keeps the recorded ID and time; its detail and total come from the
// new evaluation, so they match the record unless evaluation rules changed.
func (s *Service) Replay(ctx context.Context, rollID string) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "roll.Replay",
		trace.WithAttributes(attribute.String("dice.roll_id", rollID)),
	)
	defer span.End()

	if s.recorder == nil {
		recordFailure(span, storage.ErrNotFound)
		return Result{}, storage.ErrNotFound
	}
	record, err := s.recorder.GetRoll(ctx, rollID)
	if err != nil {
		recordFailure(span, err)
		return Result{}, err
	}
	expression, detail, total, err := s.evaluate(record.Expression, record.Seed)
	if err != nil {
		recordFailure(span, err)
		return Result{}, err
	}

	result := fromRecord(record)
	result.Expression = expression
	result.Detail = detail
	result.Total = total
	span.SetAttributes(attribute.Bool("dice.replay_matches", detail == record.Detail && total == record.Total))
	return result, nil
}

func toRecord(result Result) storage.RollRecord {
	return storage.RollRecord{
		ID:         result.ID,
		Expression: result.Expression,
		Detail:     result.Detail,
		Total:      result.Total,
		Seed:       result.Seed,
		SeedSource: result.SeedSource,
		RolledAt:   result.RolledAt,
	}
}

func fromRecord(record storage.RollRecord) Result {
	return Result{
		ID:         record.ID,
		Expression: record.Expression,
		Detail:     record.Detail,
		Total:      record.Total,
		Seed:       record.Seed,
		SeedSource: record.SeedSource,
		RolledAt:   record.RolledAt,
	}
}

// FormatTotal renders a total without a trailing ".0" for whole numbers.
func FormatTotal(total float64) string {
	return strconv.FormatFloat(total, 'f', -1, 64)
}
