package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/assistant"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/cloud"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/config"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/fsaccess"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/ledger"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/persist"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/repositories/exports"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/settings"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/storage"
	"github.com/dmitrijs2005/cakeinvoice/internal/logging"
	"github.com/dmitrijs2005/cakeinvoice/internal/totals"
	"go.uber.org/multierr"
)

var (
	errAINotAvailable = errors.New("AI features unavailable: set GEMINI_API_KEY")
	errGoogleMissing  = errors.New("google credentials file not set, see 'profile'")
	errS3Missing      = errors.New("object storage not configured (CAKEINVOICE_S3_*)")
)

// orderParser is the AI surface the CLI uses.
type orderParser interface {
	ParseOrder(ctx context.Context, text string, menu []models.Product) (models.InvoicePatch, error)
	ParseMenu(ctx context.Context, src assistant.MenuSource) ([]models.Product, error)
}

type command func(ctx context.Context, args []string) error

type App struct {
	config   *config.Config
	log      logging.Logger
	settings *settings.Store
	history  exports.Repository
	invoice  *models.Invoice

	selector *persist.Selector
	confirm  fsaccess.Confirmer
	dir      *fsaccess.Directory

	orders    orderParser
	s3        cloud.Uploader
	newDrive  func(ctx context.Context, credentialsFile string) (cloud.Uploader, error)
	newLedger func(ctx context.Context) (ledger.Appender, error)
	lastLink  string

	reader  *bufio.Reader
	out     io.Writer
	now     func() time.Time
	closers []io.Closer
	cmds    map[string]command
}

// NewApp wires storage, the settings profile and every export channel.
// Optional integrations that cannot be set up are logged and left off.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	picker := fsaccess.NewTerminalPicker(reader, os.Stdout, int(os.Stdin.Fd()))

	a := &App{
		config:   c,
		log:      log,
		settings: settings.NewStore(repos.Metadata, log),
		history:  repos.Exports,
		selector: persist.NewSelector(picker, fsaccess.DownloadDir{Dir: c.DownloadDir}, log),
		confirm:  fsaccess.LineConfirmer(reader, os.Stdout),
		reader:   reader,
		out:      os.Stdout,
		now:      time.Now,
		closers:  []io.Closer{repos},
	}
	a.newDrive = func(ctx context.Context, cred string) (cloud.Uploader, error) {
		return cloud.NewDriveUploader(ctx, cred)
	}
	a.newLedger = a.defaultLedger

	profile := a.settings.Load(ctx)

	if ai, err := assistant.New(ctx, c.GeminiAPIKey, c.GeminiModel, profile.CompanyName, log); err != nil {
		log.Info(ctx, "order assistant disabled", "reason", err)
	} else {
		a.orders = ai
	}
	if c.S3Configured() {
		a.s3 = cloud.NewS3Uploader(cloud.S3Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		})
	}

	a.init(profile)
	return a, nil
}

// init builds the first invoice and subscribes it to profile changes.
func (a *App) init(profile models.Settings) {
	a.invoice = models.NewInvoice(a.now(), nil)
	a.invoice.ApplyProfile(profile)

	a.settings.OnChange(func(s models.Settings) {
		a.invoice.ApplyProfile(s)
		if ai, ok := a.orders.(interface{ SetCompany(string) }); ok {
			ai.SetCompany(s.CompanyName)
		}
	})
	a.cmds = a.commands()
}

// Run blocks in the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	printlnFn(fmt.Sprintf("%s invoices (type 'help' for commands)", a.settings.Current().CompanyName))
	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the database and any other held resources.
func (a *App) Close() error {
	var err error
	for _, c := range a.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}

func (a *App) Dispatch(ctx context.Context, cmd string, args []string) error {
	fn, ok := a.cmds[cmd]
	if !ok {
		return errUnknownCommand
	}
	return fn(ctx, args)
}

func (a *App) status() string {
	return fmt.Sprintf("(%s $%s)", a.invoice.Number, totals.Format(a.invoice.Totals().Total))
}

func (a *App) commands() map[string]command {
	return map[string]command{
		"show":       a.Show,
		"print":      a.Show,
		"new":        a.New,
		"edit":       a.Edit,
		"additem":    a.AddItem,
		"addmenu":    a.AddFromMenu,
		"edititem":   a.EditItem,
		"rmitem":     a.RemoveItem,
		"tax":        a.SetTax,
		"discount":   a.SetDiscount,
		"status":     a.SetStatus,
		"notes":      a.SetNotes,
		"ai":         a.AutoFill,
		"menu":       a.Menu,
		"addproduct": a.AddProduct,
		"rmproduct":  a.RemoveProduct,
		"importmenu": a.ImportMenu,
		"profile":    a.Profile,
		"savedir":    a.SaveDir,
		"save":       a.Save,
		"drive":      a.Drive,
		"upload":     a.Upload,
		"sheet":      a.Sheet,
		"share":      a.Share,
		"history":    a.History,
	}
}

func (a *App) defaultLedger(ctx context.Context) (ledger.Appender, error) {
	if strings.EqualFold(a.config.LedgerBackend, config.LedgerXLSX) {
		return ledger.NewXLSXLedger(a.config.XLSXPath), nil
	}
	st := a.settings.Current()
	if !st.GoogleConfigured() {
		return nil, errGoogleMissing
	}
	return ledger.NewSheetsLedger(ctx, st.GoogleCredentialsFile, st.CompanyName, a.settings)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
