package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"thelab/config"
	"thelab/form"
	"thelab/models"
	"thelab/signup"
	"thelab/tui"
	"thelab/validation"
	"thelab/web"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sign-up page and API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			srv := web.NewServer(cfg, signup.New(cfg))
			return web.Run(srv, cfg)
		},
	}
	cmd.Flags().String("address", "", "listen address")
	cmd.Flags().String("google-client-id", "", "enable Google sign-up with this OAuth client id")
	_ = viper.BindPFlag(config.KeyAddress, cmd.Flags().Lookup("address"))
	_ = viper.BindPFlag(config.KeyGoogleClientID, cmd.Flags().Lookup("google-client-id"))
	return cmd
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Fill in the sign-up form in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			engine := signup.New(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			notices := &form.Queue{}
			machine := engine.NewMachine(notices)
			if err := tui.Run(ctx, machine, engine.Local, notices); err != nil {
				return serr.Wrap(err, "terminal form failed")
			}
			return nil
		},
	}
}

// validateFlags maps flag names to the fields they fill.
var validateFlags = []struct {
	flag string
	key  models.FieldKey
}{
	{"email", models.FieldEmail},
	{"username", models.FieldUsername},
	{"first-name", models.FieldFirstName},
	{"surname", models.FieldSurname},
	{"password", models.FieldPassword},
	{"password-confirmation", models.FieldPasswordConfirmation},
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate sign-up values without submitting them",
		Example: `  thelab validate --variant username --email john@mail.com --username johnny \
    --password secret12 --password-confirmation secret12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			values := make(models.FormValues)
			for _, vf := range validateFlags {
				if cmd.Flags().Changed(vf.flag) {
					v, _ := cmd.Flags().GetString(vf.flag)
					values[vf.key] = v
				}
			}
			return runValidate(cmd.OutOrStdout(), cfg.FormVariant, values)
		},
	}
	for _, vf := range validateFlags {
		cmd.Flags().String(vf.flag, "", string(vf.key)+" value")
	}
	return cmd
}

// runValidate prints one row per field of the variant and fails when any
// field is invalid. Fields of the other variant are reported as ignored.
func runValidate(w io.Writer, variant models.Variant, values models.FormValues) error {
	catalog := models.CatalogFor(variant)
	m := form.NewMachine(catalog, validation.RulesFor(variant), nil, nil)

	var ignored []string
	for key, v := range values {
		if !catalog.Has(key) {
			ignored = append(ignored, string(key))
			continue
		}
		m.SetValue(key, v)
	}
	m.TouchAll()

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Field", "Value", "Result"})
	for _, f := range catalog.Fields() {
		shown := m.Value(f.ID)
		if f.IsSecret() && shown != "" {
			shown = strings.Repeat("*", len([]rune(shown)))
		}
		result := "ok"
		if msg, bad := m.Error(f.ID); bad {
			result = msg
		}
		tw.AppendRow(table.Row{f.Label, shown, result})
	}
	tw.Render()

	if len(ignored) > 0 {
		sort.Strings(ignored)
		fmt.Fprintf(w, "ignored for the %s form: %s\n", variant, strings.Join(ignored, ", "))
	}

	if n := len(m.Errors()); n > 0 {
		return serr.New(fmt.Sprintf("%d invalid field(s)", n))
	}
	return nil
}
