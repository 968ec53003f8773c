package main

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/config"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/db"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/identity"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
)

func main() {
	app := &cli.App{
		Name:  "trackctl",
		Usage: "Track-in-Train admin tool",
		Commands: []*cli.Command{
			sendCommand(),
			createAdminCommand(),
			genrsaCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// sendCommand fires a test notification at a running server.
func sendCommand() *cli.Command {
	return &cli.Command{
		Name:  "send",
		Usage: "dispatch a notification event against a running server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "server", Value: "http://localhost:8080", Usage: "server base URL"},
			&cli.StringFlag{Name: "token", Required: true, Usage: "bearer token"},
			&cli.StringFlag{Name: "type", Value: "status_change", Usage: "event type"},
			&cli.StringFlag{Name: "message", Required: true, Usage: "event message"},
			&cli.StringSliceFlag{Name: "user", Usage: "target userId (repeatable)"},
			&cli.StringFlag{Name: "zone", Usage: "target zone (broadcast)"},
		},
		Action: func(c *cli.Context) error {
			body := map[string]any{
				"type":    c.String("type"),
				"message": c.String("message"),
			}
			if users := c.StringSlice("user"); len(users) > 0 {
				body["targetUsers"] = users
			}
			if zone := c.String("zone"); zone != "" {
				body["targetZone"] = zone
			}
			b, err := json.Marshal(body)
			if err != nil {
				return err
			}
			url := strings.TrimSuffix(c.String("server"), "/") + "/api/v1/notifications/send"
			req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+c.String("token"))
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			var out map[string]int
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return fmt.Errorf("server returned %s", resp.Status)
			}
			fmt.Printf("delivered to %d live connection(s)\n", out["delivered"])
			return nil
		},
	}
}

// createAdminCommand inserts a SuperAdmin account directly into the DB.
func createAdminCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-admin",
		Usage: "create a SuperAdmin account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Required: true, Usage: "userId"},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "zone", Value: ""},
		},
		Action: func(c *cli.Context) error {
			cfg := config.LoadConfig()
			db.InitDB(cfg)
			hash, err := bcrypt.GenerateFromPassword([]byte(c.String("password")), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user := &models.UserAccount{
				ID:           uuid.New(),
				UserID:       identity.Canonical(c.String("user")),
				Email:        c.String("email"),
				PasswordHash: string(hash),
				Role:         "SuperAdmin",
				Zone:         c.String("zone"),
				Status:       "active",
			}
			if err := db.MasterDB.Create(user).Error; err != nil {
				return err
			}
			fmt.Printf("created %s (%s)\n", user.UserID, user.ID)
			return nil
		},
	}
}

// genrsaCommand writes the RSA keypair the JWT layer signs with.
func genrsaCommand() *cli.Command {
	return &cli.Command{
		Name:  "genrsa",
		Usage: "generate the RSA keypair used for JWT signing",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "private", Value: "private.pem"},
			&cli.StringFlag{Name: "public", Value: "public.pem"},
			&cli.IntFlag{Name: "bits", Value: 2048},
		},
		Action: func(c *cli.Context) error {
			key, err := rsa.GenerateKey(rand.Reader, c.Int("bits"))
			if err != nil {
				return err
			}
			privPEM := pem.EncodeToMemory(&pem.Block{
				Type:  "RSA PRIVATE KEY",
				Bytes: x509.MarshalPKCS1PrivateKey(key),
			})
			pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
			if err != nil {
				return err
			}
			pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
			if err := os.WriteFile(c.String("private"), privPEM, 0600); err != nil {
				return err
			}
			if err := os.WriteFile(c.String("public"), pubPEM, 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s and %s\n", c.String("private"), c.String("public"))
			return nil
		},
	}
}
