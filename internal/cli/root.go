package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hbjs97/cf-switch/internal/cmdexec"
	"github.com/hbjs97/cf-switch/internal/config"
	"github.com/hbjs97/cf-switch/internal/delegate"
	"github.com/hbjs97/cf-switch/internal/flarectl"
	"github.com/hbjs97/cf-switch/internal/logging"
	"github.com/hbjs97/cf-switch/internal/setup"
	"github.com/hbjs97/cf-switch/internal/store"
	"github.com/hbjs97/cf-switch/internal/switcher"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// binaryName은 hook 스니펫이 호출하는 실행 파일 이름이다.
const binaryName = "cf-switch"

// App은 CLI 명령이 공유하는 의존성이다. 테스트는 필드를 교체하여 주입한다.
type App struct {
	Commander  cmdexec.Commander
	CfgPath    string
	Home       string
	Fs         afero.Fs
	Out        io.Writer // export 문 전용
	Err        io.Writer // 사람이 읽는 모든 출력
	In         *os.File
	FormRunner setup.FormRunner
	Getenv     func(string) string

	shellFlag string
	colorFlag string
	verbose   bool

	cfg    *config.Config
	logger *zap.Logger
	ui     *ui
}

// NewApp은 실제 프로세스 환경을 쓰는 App을 생성한다.
func NewApp() *App {
	return &App{
		Commander:  &cmdexec.RealCommander{},
		Fs:         afero.NewOsFs(),
		Out:        os.Stdout,
		Err:        os.Stderr,
		In:         os.Stdin,
		FormRunner: &setup.HuhFormRunner{Out: os.Stderr},
		Getenv:     os.Getenv,
	}
}

// NewRootCmd는 기본 App으로 cf-switch CLI의 루트 명령을 생성한다.
func NewRootCmd() *cobra.Command {
	return NewApp().NewRootCmd()
}

// NewRootCmd는 cf-switch CLI의 루트 명령을 생성한다.
// 인자 없이 실행하면 직전 프로필로 토글한다.
func (a *App) NewRootCmd() *cobra.Command {
	a.defaults()

	cmd := &cobra.Command{
		Use:   binaryName,
		Short: "Switch between Cloudflare credential profiles",
		Long: `Switch between Cloudflare credential profiles.

Switching prints shell export statements on stdout; install the cfs wrapper
(cf-switch hook --install) so your shell evaluates them. Every other command
writes to stderr only.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUse("")
		},
	}
	cmd.SetOut(a.Err)
	cmd.SetErr(a.Err)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", a.CfgPath, "settings file path")
	cmd.PersistentFlags().StringVar(&a.shellFlag, "shell", "", "export dialect: bash, zsh, sh, fish (default: settings or $SHELL)")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "debug logging on stderr")
	cmd.PersistentFlags().StringVar(&a.colorFlag, "color", "auto", "colorize output: auto, always, never")

	cmd.AddCommand(
		a.newUseCmd(),
		a.newListCmd(),
		a.newCurrentCmd(),
		a.newAddCmd(),
		a.newPurgeCmd(),
		a.newAddLamderaAppCmd(),
		a.newHookCmd(),
		a.newDoctorCmd(),
		a.newConfigCmd(),
	)
	return cmd
}

// Run은 args로 CLI를 실행하고 종료 코드를 반환한다. 에러는 stderr에 출력한다.
func (a *App) Run(ctx context.Context, args []string) ExitCode {
	cmd := a.NewRootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		a.PrintError(err)
	}
	return MapExitCode(err)
}

// PrintError는 에러를 "Error: ..." 형식으로 stderr에 출력한다.
func (a *App) PrintError(err error) {
	if a.ui == nil {
		a.ui = newUI(a.Err, "auto", a.Getenv("NO_COLOR") != "")
	}
	a.ui.error(MaskTokens(err.Error()))
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		a.ui.printf("Run '%s --help' for usage.\n", binaryName)
	}
}

func (a *App) defaults() {
	if a.Getenv == nil {
		a.Getenv = os.Getenv
	}
	if a.Fs == nil {
		a.Fs = afero.NewOsFs()
	}
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.Err == nil {
		a.Err = os.Stderr
	}
	if a.Commander == nil {
		a.Commander = &cmdexec.RealCommander{}
	}
	if a.Home == "" {
		a.Home = homeDir()
	}
	if a.CfgPath == "" {
		a.CfgPath = config.DefaultPath(a.Home)
	}
	a.logger = zap.NewNop()
}

func (a *App) init() error {
	switch a.colorFlag {
	case "auto", "always", "never":
	default:
		return &UsageError{Err: fmt.Errorf("invalid --color %q (auto, always, never)", a.colorFlag)}
	}
	switch a.shellFlag {
	case "", "bash", "zsh", "sh", "fish":
	default:
		return &UsageError{Err: fmt.Errorf("invalid --shell %q (bash, zsh, sh, fish)", a.shellFlag)}
	}
	a.ui = newUI(a.Err, a.colorFlag, a.Getenv("NO_COLOR") != "")
	a.logger = logging.New(a.verbose, a.Err)
	a.cfg = nil
	return nil
}

// settings는 설정 파일을 한 번만 로드한다.
func (a *App) settings() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(a.Fs, a.CfgPath)
	if err != nil {
		return nil, err
	}
	cfg.ExpandPaths(a.Home)
	a.logger.Debug("settings loaded",
		zap.String("path", a.CfgPath),
		zap.String("store", cfg.StorePath),
		zap.String("env", cfg.EnvPath))
	a.cfg = cfg
	return cfg, nil
}

func (a *App) storeManager() (*store.Manager, error) {
	cfg, err := a.settings()
	if err != nil {
		return nil, err
	}
	return store.New(a.Fs, cfg.StorePath, a.logger), nil
}

func (a *App) switcher(opts ...switcher.Option) (*switcher.Switcher, error) {
	m, err := a.storeManager()
	if err != nil {
		return nil, err
	}
	return switcher.New(m, opts...), nil
}

func (a *App) client() (*flarectl.Adapter, error) {
	cfg, err := a.settings()
	if err != nil {
		return nil, err
	}
	return flarectl.NewAdapter(a.Commander, cfg.Client, a.logger), nil
}

func (a *App) delegateRunner() (*delegate.Runner, error) {
	m, err := a.storeManager()
	if err != nil {
		return nil, err
	}
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	return delegate.NewRunner(m, client, delegate.Options{
		Out:           a.Err,
		LamderaTarget: a.cfg.LamderaTarget,
		Logger:        a.logger,
	}), nil
}

func (a *App) shellType() string {
	cfgShell := ""
	if a.cfg != nil {
		cfgShell = a.cfg.Shell
	}
	return setup.ResolveShell(a.shellFlag, cfgShell)
}

func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot determine home directory: %v\n", err)
		return "."
	}
	return home
}
