// Команда seed наполняет базу тестовыми пользователями, по одной задаче на каждого.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"

	"github.com/iudanet/taskkeeper/internal/crypto"
	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/storage/backend"
	"github.com/iudanet/taskkeeper/internal/server/tasks"
	"github.com/iudanet/taskkeeper/internal/server/users"
)

type config struct {
	Driver     string `env:"TASKKEEPER_DATABASE_DRIVER" envDefault:"sqlite"`
	DSN        string `env:"TASKKEEPER_DATABASE_DSN"    envDefault:"taskkeeper.db"`
	Count      int    `env:"TASKKEEPER_SEED_COUNT"      envDefault:"10"`
	BcryptCost int    `env:"TASKKEEPER_BCRYPT_COST"     envDefault:"10"`
}

type userCreator interface {
	CreateUser(ctx context.Context, username, email, password string) (*models.User, error)
}

type taskCreator interface {
	Create(ctx context.Context, ownerID, title, description string) (*models.Task, error)
}

var words = []string{
	"alpha", "bridge", "cloud", "delta", "engine", "forest", "garden", "harbor",
	"island", "jungle", "kernel", "ladder", "meadow", "needle", "orbit", "pepper",
	"quartz", "river", "signal", "timber", "umbrella", "valley", "window", "yellow",
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "parse env: %v\n", err)
		os.Exit(2)
	}
	flag.StringVar(&cfg.Driver, "driver", cfg.Driver, "database driver: pgx or sqlite")
	flag.StringVar(&cfg.DSN, "d", cfg.DSN, "database DSN (file path for sqlite)")
	flag.IntVar(&cfg.Count, "n", cfg.Count, "number of users to create")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, out io.Writer) error {
	store, err := backend.Open(ctx, backend.Options{Driver: cfg.Driver, DSN: cfg.DSN})
	if err != nil {
		return err
	}
	defer store.Close()

	now := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewPCG(now, now>>1))

	return seed(ctx, cfg.Count,
		users.NewStore(store, crypto.NewBcryptHasher(cfg.BcryptCost, 0)),
		tasks.NewRepository(store),
		rng, out)
}

// seed создает n пользователей через обычные проверки регистрации
// и по одной задаче для каждого.
func seed(ctx context.Context, n int, us userCreator, ts taskCreator, rng *rand.Rand, out io.Writer) error {
	for i := range n {
		username := fmt.Sprintf("%s_%s", words[rng.IntN(len(words))], uuid.NewString()[:8])

		user, err := us.CreateUser(ctx, username, username+"@example.com", randomPassword(rng))
		if err != nil {
			return fmt.Errorf("create user %d: %w", i+1, err)
		}

		task, err := ts.Create(ctx, user.ID, phrase(rng, 3), phrase(rng, 15))
		if err != nil {
			return fmt.Errorf("create task %d: %w", i+1, err)
		}

		fmt.Fprintf(out, "Data %d: user id: %s | task id: %s\n", i+1, user.ID, task.ID)
	}
	return nil
}

func phrase(rng *rand.Rand, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[rng.IntN(len(words))]
	}
	return strings.Join(parts, " ")
}

// randomPassword всегда содержит все требуемые классы символов
func randomPassword(rng *rand.Rand) string {
	const (
		lower  = "abcdefghijklmnopqrstuvwxyz"
		upper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		digits = "0123456789"
		punct  = "!#$%&*+-.?@_"
	)
	pick := func(set string) byte { return set[rng.IntN(len(set))] }

	b := []byte{pick(lower), pick(upper), pick(digits), pick(punct)}
	all := lower + upper + digits + punct
	for range 8 {
		b = append(b, pick(all))
	}
	rng.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })
	return string(b)
}
