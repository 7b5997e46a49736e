// This program performs administrative tasks for the smartroom service.
package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/mail"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/tenantbus"
	"github.com/jcpaschoal/smartroom/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/smartroom/business/domain/userbus"
	"github.com/jcpaschoal/smartroom/business/domain/userbus/stores/userdb"
	"github.com/jcpaschoal/smartroom/business/sdk/migrate"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/business/types/name"
	"github.com/jcpaschoal/smartroom/business/types/password"
	"github.com/jcpaschoal/smartroom/business/types/role"
	"github.com/jcpaschoal/smartroom/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config replicates necessary DB config structure
type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"smartroom"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Auth struct {
		KeysFolder string `envconfig:"AUTH_KEYS_FOLDER" default:"zarf/keys"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "admin", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, seed, genkey, create-tenant, create-user")
		return nil
	}

	// genkey is the only command that does not need the database.
	if os.Args[1] == "genkey" {
		return runGenKey(cfg.Auth.KeysFolder)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "migrate":
		return runMigrate(ctx, db)
	case "seed":
		return runSeed(ctx, db)
	case "create-tenant":
		return runCreateTenant(ctx, tenantbus.NewCore(log, tenantdb.NewStore(log, db)), os.Args[2:])
	case "create-user":
		return runCreateUser(ctx, userbus.NewCore(userdb.NewStore(log, db)), os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func runMigrate(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := migrate.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	fmt.Println("migrations complete")
	return nil
}

func runSeed(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := migrate.Seed(ctx, db); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	fmt.Println("seed data complete")
	return nil
}

// runGenKey creates an x509 private key for signing auth tokens. The file is
// named after a fresh key id so the api picks it up from the keys folder.
func runGenKey(folder string) error {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	if err := os.MkdirAll(folder, 0o700); err != nil {
		return fmt.Errorf("creating keys folder: %w", err)
	}

	kid := uuid.NewString()
	fileName := filepath.Join(folder, kid+".pem")

	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("creating private file: %w", err)
	}
	defer file.Close()

	block := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}

	if err := pem.Encode(file, &block); err != nil {
		return fmt.Errorf("encoding to private file: %w", err)
	}

	fmt.Printf("private key file generated\nkid: %s\nfile: %s\n", kid, fileName)
	return nil
}

func runCreateTenant(ctx context.Context, tb *tenantbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-tenant", flag.ExitOnError)
	nameStr := cmd.String("name", "", "Tenant name (Required)")
	slugStr := cmd.String("slug", "", "Tenant slug used at registration (Required)")
	cmd.Parse(args)

	if *nameStr == "" || *slugStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	tn, err := tb.Create(ctx, tenantbus.NewTenant{
		Name: n,
		Slug: *slugStr,
	})
	if err != nil {
		return fmt.Errorf("create tenant failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Tenant created!\nID: %s\nSlug: %s\n", tn.ID, tn.Slug)
	return nil
}

func runCreateUser(ctx context.Context, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-user", flag.ExitOnError)
	tenantStr := cmd.String("tenant", "", "Tenant UUID (Required)")
	emailStr := cmd.String("email", "", "User email (Required)")
	passStr := cmd.String("password", "", "User password (Required)")
	nameStr := cmd.String("name", "", "User full name (Required)")
	roleStr := cmd.String("role", "USER", "User role (ADMIN, USER)")
	cmd.Parse(args)

	if *tenantStr == "" || *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	tenantID, err := uuid.Parse(*tenantStr)
	if err != nil {
		return fmt.Errorf("invalid tenant uuid: %w", err)
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	r, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	addr, err := mail.ParseAddress(*emailStr)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	usr, err := ub.Create(ctx, userbus.NewUser{
		TenantID: tenantID,
		Name:     n,
		Email:    *addr,
		Role:     r,
		Password: p,
	})
	if err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: User created!\nID: %s\nEmail: %s\nRole: %s\n", usr.ID, usr.Email.Address, usr.Role)
	return nil
}

// go run api/tooling/admin/main.go genkey
// go run api/tooling/admin/main.go migrate
// go run api/tooling/admin/main.go create-tenant -name "Acme Corp" -slug "acme"
// go run api/tooling/admin/main.go create-user -tenant <tenant-id> -email "admin@acme.io" -password "Admin123!" -name "Admin User" -role "ADMIN"
