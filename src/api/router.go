package api

import (
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/handlers"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/ledger"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// UserCache resolves token users and forgets them when they change.
type UserCache interface {
	middleware.UserResolver
	handlers.UserEvicter
}

type Deps struct {
	Pool           *pgxpool.Pool
	Ledger         *ledger.Ledger
	Users          UserCache
	Tokens         handlers.TokenConfig
	AllowedOrigins []string
	ReadOnly       bool
	Log            logrus.FieldLogger
}

func NewRouter(d Deps) *chi.Mux {
	pool, log := d.Pool, d.Log

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(d.AllowedOrigins))
	r.Use(middleware.ReadOnlyMiddleware(d.ReadOnly))

	r.Get("/health", handlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health())
		r.Post("/login", handlers.Login(pool, d.Tokens, log))
		r.Post("/register", handlers.Register(pool, d.Tokens, log))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(d.Tokens.Secret, d.Users, log)).Group(func(r chi.Router) {
			// User
			r.Get("/user", handlers.GetUser(pool, log))
			r.Put("/user", handlers.UpdateUser(pool, d.Users, log))
			r.Post("/user/change-password", handlers.ChangePassword(pool, log))
			r.Delete("/user", handlers.DeleteUser(pool, d.Users, log))

			// Accounts
			r.Post("/accounts", handlers.CreateAccount(pool, log))
			r.Get("/accounts", handlers.GetAccounts(pool, log))
			r.Get("/accounts/{account_id}", handlers.GetAccount(pool, log))
			r.Put("/accounts/{account_id}", handlers.UpdateAccount(pool, log))
			r.Delete("/accounts/{account_id}", handlers.DeleteAccount(pool, log))
			r.Get("/accounts/{account_id}/reconcile", handlers.ReconcileAccount(pool, log))

			// Transactions
			r.Post("/transactions", handlers.CreateTransaction(d.Ledger, log))
			r.Get("/transactions", handlers.GetTransactions(d.Ledger, log))
			r.Get("/transactions/{transaction_id}", handlers.GetTransaction(d.Ledger, log))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(d.Ledger, log))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(d.Ledger, log))

			// Categories
			r.Post("/categories", handlers.CreateCategory(pool, log))
			r.Get("/categories", handlers.GetCategories(pool, log))
			r.Get("/categories/{category_id}", handlers.GetCategory(pool, log))
			r.Put("/categories/{category_id}", handlers.UpdateCategory(pool, log))
			r.Delete("/categories/{category_id}", handlers.DeleteCategory(pool, log))

			// Keyword Rules
			r.Post("/keyword-rules", handlers.CreateKeywordRule(pool, log))
			r.Get("/keyword-rules", handlers.GetAllKeywordRules(pool, log))
			r.Put("/keyword-rules/{rule_id}", handlers.UpdateKeywordRule(pool, log))
			r.Delete("/keyword-rules/{rule_id}", handlers.DeleteKeywordRule(pool, log))

			// Budget
			r.Post("/budgets", handlers.CreateBudget(pool, log))
			r.Get("/budgets", handlers.GetAllBudgetsForUser(pool, log))
			r.Get("/budgets/{budget_id}", handlers.GetBudgetByID(pool, log))
			r.Put("/budgets/{budget_id}", handlers.UpdateBudget(pool, log))
			r.Delete("/budgets/{budget_id}", handlers.DeleteBudget(pool, log))

			// Bills
			r.Post("/bills", handlers.CreateBill(pool, log))
			r.Get("/bills", handlers.GetBills(pool, log))
			r.Get("/bills/{bill_id}", handlers.GetBill(pool, log))
			r.Put("/bills/{bill_id}", handlers.UpdateBill(pool, log))
			r.Delete("/bills/{bill_id}", handlers.DeleteBill(pool, log))
			r.Post("/bills/{bill_id}/pay", handlers.PayBill(pool, log))

			// Notifications
			r.Post("/notifications", handlers.CreateNotification(pool, log))
			r.Get("/notifications", handlers.GetNotifications(pool, log))
			r.Post("/notifications/{notification_id}/read", handlers.MarkNotificationRead(pool, log))
			r.Delete("/notifications/{notification_id}", handlers.DeleteNotification(pool, log))

			// Settings
			r.Get("/settings", handlers.GetSettings(pool, log))
			r.Put("/settings", handlers.UpdateSettings(pool, log))
		})
	})

	return r
}
