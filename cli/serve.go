package cli

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/routes"
)

// ServeCmd returns the serve command, which runs migrations and starts
// the HTTP API.
func ServeCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the wellbase HTTP API",
		Long: `Connect to the database, bring the schema up to date and serve the API.
The listen port comes from PORT (default 8080). --seed loads the default
users and strat dictionary before serving, skipping anything that exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := connect()
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := config.Migrations(config.DB); err != nil {
				return err
			}
			if seed {
				if err := config.RunAllSeeding(log); err != nil {
					log.Warn("seeding encountered issues", zap.Error(err))
				}
			}

			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}

			handler := enableCORS(routes.RegisterRoutes())
			log.Info("server starting", zap.String("port", port))
			return http.ListenAndServe(":"+port, handler)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "seed default users and strat units before serving")
	return cmd
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Required CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		// Handle preflight (OPTIONS)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
