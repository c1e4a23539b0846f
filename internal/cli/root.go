package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/specialistvlad/protocatalog/internal/app"
)

// EnvPrefix prefixes the environment variables that override flags, e.g.
// PROTOCAT_LOG_LEVEL for --log-level.
const EnvPrefix = "PROTOCAT"

// options is shared by every subcommand.
type options struct {
	v    *viper.Viper
	outW io.Writer
	errW io.Writer
}

// NewRootCommand builds the protocat command tree with its own viper
// instance, so several trees can coexist in one process.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "protocat",
		Short: "Load mod data definitions into a typed prototype catalog",
		Long: `protocat runs the data stage of every enabled mod below --mods, converts
the resulting definitions into typed prototypes and checks every reference
between them.

Every flag can also be set through the environment, e.g. PROTOCAT_MODS or
PROTOCAT_LOG_LEVEL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })

	pf := root.PersistentFlags()
	pf.StringP("mods", "m", "mods", "Path to the directory containing one directory per mod.")
	pf.String("policy", "", "Path to an HCL override policy file.")
	pf.String("locale", "", "Path to a YAML base locale file.")
	pf.String("language", "en", "Language of the mod locale files to read. Empty skips them.")
	pf.String("log-format", "text", fmt.Sprintf("Log output format. Options: %s.", strings.Join(app.LogFormats, ", ")))
	pf.String("log-level", "info", fmt.Sprintf("Set the logging level. Options: %s.", strings.Join(app.LogLevels, ", ")))
	pf.Int("workers", 0, "Prototypes converted in parallel. 0 uses every CPU.")
	pf.StringToString("setting", nil, "Startup setting value as name=value. Repeatable.")
	if err := v.BindPFlags(pf); err != nil {
		panic(fmt.Errorf("failed to bind flags: %w", err))
	}

	o := &options{v: v, outW: outW, errW: errW}
	root.AddCommand(
		newLoadCommand(o),
		newGetCommand(o),
		newKindsCommand(o),
		newOrderCommand(o),
		newRawCommand(o),
	)
	return root
}

// config reads the effective configuration from flags and environment.
func (o *options) config() (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		ModsPath:    o.v.GetString("mods"),
		PolicyPath:  o.v.GetString("policy"),
		LocalePath:  o.v.GetString("locale"),
		Language:    o.v.GetString("language"),
		LogFormat:   o.v.GetString("log-format"),
		LogLevel:    o.v.GetString("log-level"),
		WorkerCount: o.v.GetInt("workers"),
		Settings:    o.v.GetStringMapString("setting"),
	})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

// newApp constructs the application. A bad policy file is a usage error;
// startup panics propagate to the caller.
func (o *options) newApp() (*app.App, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	a, err := app.NewApp(o.outW, o.errW, cfg)
	if err != nil {
		return nil, usageError(err)
	}
	return a, nil
}
