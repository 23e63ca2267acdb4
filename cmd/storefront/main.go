package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/cart"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/catalog"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/config"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/export"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/guard"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/logging"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/order"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/session"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/tui"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/client"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Println("storefront " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.OrNop(cfg.LogPath(), cfg.LogLevel)
	defer log.Sync() //nolint:errcheck

	if len(args) == 0 {
		return runStore(cfg, log)
	}

	switch args[0] {
	case "login":
		if len(args) < 2 {
			return errors.New("usage: storefront login EMAIL")
		}
		password, err := readPassword(os.Getenv, os.Stdin)
		if err != nil {
			return err
		}
		mgr := session.NewManager(session.NewFileStore(cfg.TokenPath()), session.WithLogger(log))
		c := client.New(cfg.APIURL, mgr, client.WithTimeout(cfg.Timeout), client.WithLogger(log))
		s, err := runLogin(context.Background(), c, mgr, domain.Credentials{Email: args[1], Password: password})
		if err != nil {
			return err
		}
		printSignedIn(s)
		return nil
	case "logout":
		mgr := session.NewManager(session.NewFileStore(cfg.TokenPath()), session.WithLogger(log))
		return runLogout(mgr, os.Stdout)
	case "whoami":
		mgr := newManager(cfg, log)
		runWhoami(mgr, os.Stdout)
		return nil
	case "export-orders":
		if len(args) < 2 {
			return errors.New("usage: storefront export-orders FILE")
		}
		mgr := newManager(cfg, log)
		c := client.New(cfg.APIURL, mgr, client.WithTimeout(cfg.Timeout), client.WithLogger(log))
		return runExport(context.Background(), guard.New(mgr), c, args[1], os.Stdout)
	}
	return fmt.Errorf("unknown command %q (see storefront help)", args[0])
}

// newManager restores the session from STOREFRONT_TOKEN when set, otherwise
// from the token file.
func newManager(cfg config.Config, log *zap.Logger) *session.Manager {
	var store session.Store = session.NewFileStore(cfg.TokenPath())
	if cfg.Token != "" {
		store = session.NewMemoryStore(cfg.Token)
	}
	mgr := session.NewManager(store, session.WithLogger(log))
	mgr.Restore()
	return mgr
}

func runStore(cfg config.Config, log *zap.Logger) error {
	mgr := newManager(cfg, log)
	c := client.New(cfg.APIURL, mgr, client.WithTimeout(cfg.Timeout), client.WithLogger(log))
	cat := catalog.New(c, log)
	store := cart.NewStore(c, cat, mgr, log)
	defer store.Dispose()
	sub := order.NewSubmitter(c, mgr, store, log)
	defer sub.Dispose()

	log.Info("storefront starting", zap.String("version", version), zap.String("api_url", cfg.APIURL))
	app := tui.NewApp(tui.Deps{
		API:      c,
		Sessions: mgr,
		Catalog:  cat,
		Cart:     store,
		Checkout: sub,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// readPassword takes STOREFRONT_PASSWORD, or else the first line of in.
func readPassword(getenv func(string) string, in io.Reader) (string, error) {
	if pw := getenv(config.EnvPassword); pw != "" {
		return pw, nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("no password given")
	}
	return pw, nil
}

type loginAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (string, error)
}

type establisher interface {
	Establish(token string) (domain.Session, error)
}

func runLogin(ctx context.Context, api loginAPI, sessions establisher, creds domain.Credentials) (domain.Session, error) {
	if err := creds.Validate(); err != nil {
		return domain.Session{}, err
	}
	token, err := api.Login(ctx, creds)
	if err != nil {
		if client.IsStatus(err, 400) || client.IsStatus(err, 401) {
			return domain.Session{}, fmt.Errorf("login rejected: %s", client.Reason(err))
		}
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	return sessions.Establish(token)
}

type terminator interface {
	Restore() (domain.Session, bool)
	Terminate() error
}

func runLogout(sessions terminator, w io.Writer) error {
	if _, ok := sessions.Restore(); !ok {
		fmt.Fprintln(w, "Already logged out.")
		return nil
	}
	if err := sessions.Terminate(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(w, "Logged out.")
	return nil
}

type currentSession interface {
	Current() (domain.Session, bool)
}

func runWhoami(sessions currentSession, w io.Writer) {
	s, ok := sessions.Current()
	if !ok {
		fmt.Fprintln(w, "Not signed in.")
		return
	}
	subject := s.SubjectID
	if subject == "" {
		subject = "(unknown)"
	}
	fmt.Fprintf(w, "%s %s, expires %s\n", s.Role, subject, s.ExpiresAt.Local().Format(time.RFC1123))
}

type sellerOrders interface {
	SellerOrders(ctx context.Context) ([]domain.Order, error)
}

func runExport(ctx context.Context, g *guard.Guard, api sellerOrders, path string, w io.Writer) error {
	if err := g.Require(domain.RoleSeller); err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return errors.New("export-orders: sign in first (storefront login EMAIL)")
		}
		return errors.New("export-orders: only sellers can export orders")
	}
	orders, err := api.SellerOrders(ctx)
	if err != nil {
		return fmt.Errorf("export-orders: %w", err)
	}
	if err := export.WriteOrdersFile(path, orders); err != nil {
		return err
	}
	fmt.Fprintf(w, "Exported %d orders to %s\n", len(orders), path)
	return nil
}
