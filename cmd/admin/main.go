package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"blood-portal/internal/core/cache"
	"blood-portal/internal/core/config"
	"blood-portal/internal/core/database"
	"blood-portal/internal/core/logger"
	"blood-portal/internal/domain"
	"blood-portal/internal/repo"
	"blood-portal/internal/service"
)

const usage = `usage: blood-admin [flags] <command> [args]

commands:
  list                          列出用户（--offset/--limit 分页）
  promote <username|email>      设为 admin
  demote  <username|email>      设回 user
`

type cliOpts struct {
	config  string
	offset  int
	limit   int
	timeout time.Duration
}

func parseFlags(args []string, stderr io.Writer) (cliOpts, []string, error) {
	var o cliOpts
	fs := flag.NewFlagSet("blood-admin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVarP(&o.config, "config", "c", os.Getenv("CONFIG_PATH"), "config file path")
	fs.IntVar(&o.offset, "offset", 0, "list offset")
	fs.IntVar(&o.limit, "limit", 20, "list page size (max 100)")
	fs.DurationVar(&o.timeout, "timeout", 30*time.Second, "overall command timeout")
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	return o, fs.Args(), nil
}

func main() { os.Exit(realMain(os.Args[1:])) }

// realMain 返回退出码；所有 defer 在退出前执行
func realMain(argv []string) int {
	_ = godotenv.Load()
	o, args, err := parseFlags(argv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	cfg, err := config.Read(o.config)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:   cfg.DB.Driver,
		DSN:      cfg.DB.DSN,
		Username: cfg.DB.Username,
		Password: cfg.DB.Password,
		LogLevel: cfg.DB.LogLevel,
	})
	if err != nil {
		log.Error("db open", zap.Error(err))
		return 1
	}
	defer func() { _ = database.Close(db) }()

	// 角色变更后需要清掉 API 进程缓存的 profile
	rc := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
	defer func() { _ = rc.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	svc := service.NewAdminService(repo.NewUserRepo(db), rc, log)
	if err := run(ctx, svc, o, args, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", describe(err))
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		return 1
	}
	return 0
}

var errUsage = errors.New("invalid usage")

func run(ctx context.Context, svc *service.AdminService, o cliOpts, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "list":
		return listUsers(ctx, svc, o, out)
	case "promote", "demote":
		if len(args) != 2 {
			return fmt.Errorf("%w: %s needs exactly one <username|email>", errUsage, args[0])
		}
		role := string(domain.RoleAdmin)
		if args[0] == "demote" {
			role = string(domain.RoleUser)
		}
		u, err := svc.SetRoleByIdentifier(ctx, args[1], role)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%s) is now %s\n", u.Username, u.Email, u.Role)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func listUsers(ctx context.Context, svc *service.AdminService, o cliOpts, out io.Writer) error {
	users, total, err := svc.ListUsers(ctx, o.offset, o.limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role, u.CreatedAt.Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d users\n", len(users), total)
	return nil
}

func describe(err error) string {
	if msg := domain.Message(err); msg != "" {
		return msg
	}
	return err.Error()
}
