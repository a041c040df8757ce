package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"wellnexus_back_end/internal/cart"
	"wellnexus_back_end/internal/checkout"
	"wellnexus_back_end/internal/config"
	"wellnexus_back_end/internal/database"
	paymenthandler "wellnexus_back_end/internal/handlers/payment"
	"wellnexus_back_end/internal/handlers/user"
	"wellnexus_back_end/internal/payment"
	"wellnexus_back_end/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()

	database.ConnectDatabases()

	initOAuthProviders()

	// UPI is the default gateway; Stripe only when a key is configured.
	upi := payment.NewUPIGateway()
	var gateway payment.Gateway = upi
	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" && os.Getenv("PAYMENT_GATEWAY") == "stripe" {
		stripe.Key = key
		gateway = payment.StripeGateway{}
		log.Println("✅ Stripe gateway enabled")
	} else {
		log.Println("✅ UPI gateway enabled (" + upi.VPA + ")")
	}

	store := cart.NewStore(database.Redis)
	user.UseCartStore(store)
	paymenthandler.UseUPIGateway(upi)
	paymenthandler.UseOrchestrator(&checkout.Orchestrator{
		Carts:    store,
		Gateway:  payment.WithBreaker(gateway, 30*time.Second),
		Orders:   checkout.ScyllaOrders{},
		Sessions: checkout.ScyllaSessions{},
		Stock:    checkout.ScyllaStock{},
		Notify:   checkout.ScyllaNotifier{},
	})

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := config.Get("PORT", "8080")
	log.Println("🚀 WellNexus server listening on port", port)
	r.Run(":" + port)
}

func initOAuthProviders() {
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Println("⚠️ SESSION_SECRET missing, OAuth disabled")
		return
	}

	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.MaxAge(86400 * 30)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false, // false in dev, true in prod
		SameSite: http.SameSiteLaxMode,
	}

	gothic.Store = store

	gothic.GetProviderName = func(req *http.Request) (string, error) {
		if provider := req.URL.Query().Get("provider"); provider != "" {
			return provider, nil
		}
		if provider := req.FormValue("provider"); provider != "" {
			return provider, nil
		}
		return "", errors.New("provider not found")
	}

	baseURL := config.Get("BASE_URL", "http://localhost:8080")

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Println("⚠️ No OAuth provider configured")
		return
	}

	goth.UseProviders(google.New(clientID, clientSecret, baseURL+"/api/auth/google/callback"))
	log.Println("✅ Google OAuth enabled")
}
