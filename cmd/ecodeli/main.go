// Command ecodeli is the EcoDeli client: login, listings, deliveries and
// applications from the terminal, against either the user portal or the back
// office.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ecodeli/ecodeli-go/internal/app"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
	"github.com/ecodeli/ecodeli-go/internal/infrastructure/config"
	"github.com/ecodeli/ecodeli-go/pkg/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type cli struct {
	appName string
	app     *app.App
}

// ensureApp assembles the selected application on first use.
func (c *cli) ensureApp(ctx context.Context) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})
	a, err := app.New(ctx, c.appName, cfg, log)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func rootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:           "ecodeli",
		Short:         "EcoDeli delivery marketplace client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&c.appName, "app", app.Portal, "application to run against (portal|admin)")

	cmd.AddCommand(
		loginCmd(c),
		logoutCmd(c),
		whoamiCmd(c),
		registerCmd(c),
		annoncesCmd(c),
		livraisonsCmd(c),
		candidaturesCmd(c),
		guardCmd(c),
	)
	return cmd
}

func loginCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <motDePasse>",
		Short: "Authenticate and persist the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.Session.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Connecté en tant que %s (%s)\n", user.DisplayName(), user.UserType)
			return nil
		},
	}
}

func logoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			a.Session.Logout()
			fmt.Println("Session terminée")
			return nil
		},
	}
}

func whoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			if !a.Session.IsAuthenticated() {
				fmt.Println("Aucune session active")
				return nil
			}
			return printJSON(a.Session.User())
		},
	}
}

func registerCmd(c *cli) *cobra.Command {
	var input domain.RegisterInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and open a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.Session.Register(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Printf("Compte créé: %s (%s)\n", user.DisplayName(), user.UserType)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Prenom, "prenom", "", "first name")
	cmd.Flags().StringVar(&input.Nom, "nom", "", "last name")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	cmd.Flags().StringVar(&input.MotDePasse, "mot-de-passe", "", "password")
	cmd.Flags().StringVar(&input.UserType, "role", domain.RoleClient, "account role")
	cmd.Flags().StringVar(&input.Telephone, "telephone", "", "phone number")
	cmd.Flags().StringVar(&input.Ville, "ville", "", "city")
	return cmd
}

func annoncesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annonces",
		Short: "Delivery listings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the published listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			items, err := a.Annonces.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(items)
		},
	})

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a listing",
		Args:  cobra.NoArgs,
	}
	var annonce domain.Annonce
	createCmd.Flags().StringVar(&annonce.Titre, "titre", "", "listing title")
	createCmd.Flags().StringVar(&annonce.AdresseDepart, "depart", "", "pickup address")
	createCmd.Flags().StringVar(&annonce.AdresseFin, "arrivee", "", "delivery address")
	createCmd.Flags().Float64Var(&annonce.PrixUnitaire, "prix", 0, "offered price")
	createCmd.Flags().BoolVar(&annonce.LivraisonPartielle, "partielle", false, "allow partial delivery through a warehouse")
	createCmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, err := c.ensureApp(cmd.Context())
		if err != nil {
			return err
		}
		created, err := a.Annonces.Create(cmd.Context(), annonce)
		if err != nil {
			return err
		}
		return printJSON(created)
	}
	cmd.AddCommand(createCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "cancel <idAnnonce>",
		Short: "Cancel a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid listing id %q", args[0])
			}
			if err := a.Annonces.Cancel(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("Annonce annulée")
			return nil
		},
	})

	return cmd
}

func livraisonsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "livraisons",
		Short: "Courier deliveries",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List my deliveries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			user := a.Session.User()
			if user == nil {
				return domain.ErrNotAuthenticated
			}
			items, err := a.Livraisons.ListByLivreur(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			return printJSON(items)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "start <idLivraison>",
		Short: "Mark a delivery picked up",
		Args:  cobra.ExactArgs(1),
		RunE:  livraisonTransition(c, func(a *app.App, ctx context.Context, id int) (any, error) { return a.Livraisons.Start(ctx, id) }),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "complete <idLivraison>",
		Short: "Mark a delivery delivered",
		Args:  cobra.ExactArgs(1),
		RunE:  livraisonTransition(c, func(a *app.App, ctx context.Context, id int) (any, error) { return a.Livraisons.Complete(ctx, id) }),
	})

	return cmd
}

func livraisonTransition(c *cli, op func(*app.App, context.Context, int) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := c.ensureApp(cmd.Context())
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid delivery id %q", args[0])
		}
		updated, err := op(a, cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(updated)
	}
}

func candidaturesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidatures",
		Short: "Courier applications on listings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List my applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			user := a.Session.User()
			if user == nil {
				return domain.ErrNotAuthenticated
			}
			items, err := a.Candidatures.ListByLivreur(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			return printJSON(items)
		},
	})

	postulerCmd := &cobra.Command{
		Use:   "postuler <idAnnonce>",
		Short: "Apply for a listing",
		Args:  cobra.ExactArgs(1),
	}
	var message string
	postulerCmd.Flags().StringVar(&message, "message", "", "message for the listing owner")
	postulerCmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, err := c.ensureApp(cmd.Context())
		if err != nil {
			return err
		}
		user := a.Session.User()
		if user == nil {
			return domain.ErrNotAuthenticated
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid listing id %q", args[0])
		}
		created, err := a.Candidatures.Postuler(cmd.Context(), id, user.ID, message)
		if err != nil {
			return err
		}
		return printJSON(created)
	}
	cmd.AddCommand(postulerCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "accepter <idCandidature> <idAnnonce>",
		Short: "Accept an application on my listing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			candidatureID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid application id %q", args[0])
			}
			annonceID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid listing id %q", args[1])
			}
			items, err := a.Candidatures.Accepter(cmd.Context(), candidatureID, "", annonceID)
			if err != nil {
				return err
			}
			return printJSON(items)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "refuser <idCandidature>",
		Short: "Decline an application on my listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid application id %q", args[0])
			}
			if err := a.Candidatures.Refuser(cmd.Context(), id, ""); err != nil {
				return err
			}
			fmt.Println("Candidature refusée")
			return nil
		},
	})

	return cmd
}

func guardCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guard",
		Short: "Navigation guard",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Decide whether the current session may visit a route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(a.Guard.Check(args[0]))
		},
	})
	return cmd
}
