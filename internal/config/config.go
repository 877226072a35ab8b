package config

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/rentstead/rentals-service/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string
	Env              string

	DBUrl        string
	RSAPublicKey *rsa.PublicKey

	UploadDir     string
	UploadBaseURL string

	GoogleMapsAPIKey string

	SendgridAPIKey    string
	SendgridFromEmail string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFromNumber  string

	// Feature-flag snapshots
	LDFlag_SeedDbWithTestData bool
	LDFlag_NotifyOnDecision   bool
	LDFlag_CORSHighSecurity   bool
}

const (
	OrganizationName    = "Rentstead"
	LDConnectionTimeout = 5 * time.Second
)

// AppName may be overridden at build time with -ldflags.
var AppName = "rentals-service"

// LoadConfig reads required env vars, then layers optional BWS secrets and
// LaunchDarkly flag snapshots on top. Missing optional integrations degrade
// to env-var lookups so a local run needs nothing but a database.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}

	//----------------------------------------------------------------------
	// BWS secrets, when an access token is configured. Everything read
	// after this point goes through lookup() so BWS and plain env behave
	// the same.
	//----------------------------------------------------------------------
	secrets := map[string]string{}
	if os.Getenv("BWS_ACCESS_TOKEN") != "" {
		client, err := utils.NewBWSSecretsClient()
		if err != nil {
			utils.Logger.WithError(err).Fatal("Init BWS client")
		}
		bwsProjectName := fmt.Sprintf("%s-%s", AppName, env)
		secrets, err = client.GetBWSSecrets(bwsProjectName)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Fetch BWS secrets")
		}
	}
	lookup := func(key string) string {
		if v, ok := secrets[key]; ok && v != "" {
			return v
		}
		return os.Getenv(key)
	}

	dbURL := lookup("DATABASE_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DATABASE_URL missing (env or BWS)")
	}

	pubPEM := lookup("JWT_PUBLIC_KEY_PEM")
	if pubPEM == "" {
		utils.Logger.Fatal("JWT_PUBLIC_KEY_PEM missing (env or BWS)")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pubPEM))
	if err != nil {
		utils.Logger.WithError(err).Fatal("Parse JWT public key")
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	cfg := &Config{
		OrganizationName:  OrganizationName,
		AppName:           AppName,
		AppPort:           appPort,
		AppUrl:            appURL,
		Env:               env,
		DBUrl:             dbURL,
		RSAPublicKey:      pubKey,
		UploadDir:         uploadDir,
		UploadBaseURL:     appURL + "/uploads",
		GoogleMapsAPIKey:  lookup("GOOGLE_MAPS_API_KEY"),
		SendgridAPIKey:    lookup("SENDGRID_API_KEY"),
		SendgridFromEmail: lookup("SENDGRID_FROM_EMAIL"),
		TwilioAccountSID:  lookup("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   lookup("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:  lookup("TWILIO_FROM_NUMBER"),
	}

	//----------------------------------------------------------------------
	// LaunchDarkly flag snapshots; env fallbacks when no SDK key is set.
	//----------------------------------------------------------------------
	cfg.LDFlag_SeedDbWithTestData = os.Getenv("SEED_DB_WITH_TEST_DATA") == "true"
	cfg.LDFlag_NotifyOnDecision = os.Getenv("NOTIFY_ON_DECISION") == "true"
	cfg.LDFlag_CORSHighSecurity = os.Getenv("CORS_HIGH_SECURITY") == "true"

	if ldSDK := lookup("LD_SDK_KEY"); ldSDK != "" {
		ldClient, err := ld.MakeClient(ldSDK, LDConnectionTimeout)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
		}
		if !ldClient.Initialized() {
			ldClient.Close()
			utils.Logger.Fatal("LaunchDarkly client failed to initialize")
		}
		defer ldClient.Close()

		ctx := ldcontext.NewWithKind("service", AppName+"-"+env)

		cfg.LDFlag_SeedDbWithTestData, _ = ldClient.BoolVariation("seed_db_with_test_data", ctx, cfg.LDFlag_SeedDbWithTestData)
		cfg.LDFlag_NotifyOnDecision, _ = ldClient.BoolVariation("notify_on_application_decision", ctx, cfg.LDFlag_NotifyOnDecision)
		cfg.LDFlag_CORSHighSecurity, _ = ldClient.BoolVariation("cors_high_security", ctx, cfg.LDFlag_CORSHighSecurity)

		if fromEmail, err := ldClient.StringVariation("sendgrid_from_email", ctx, cfg.SendgridFromEmail); err == nil && fromEmail != "" {
			cfg.SendgridFromEmail = fromEmail
		}
	}

	utils.Logger.Infof("Loaded config for %s (%s)", AppName, env)
	return cfg
}

func (c *Config) Close() {
}
