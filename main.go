package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/go-catalog/app/cmd"
	"github.com/Rakhulsr/go-catalog/app/configs"
	"github.com/Rakhulsr/go-catalog/app/routes"
	"github.com/Rakhulsr/go-catalog/app/services"
)

func main() {

	env := configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli(env)
		return
	}

	db, err := configs.OpenConnection(env)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	ctx := context.Background()
	store, localFiles, err := configs.OpenBlobStore(ctx, env)
	if err != nil {
		log.Fatal("Blob store init failed:", err)
	}

	mailer := services.NewMailer(services.Config{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	})
	if env.ContactTo == "" {
		log.Println("Warning: CONTACT_TO is empty, contact messages cannot be delivered")
	}

	router := routes.NewRouter(routes.Deps{
		DB:           db,
		Store:        store,
		LocalFiles:   localFiles,
		Mailer:       mailer,
		ContactTo:    env.ContactTo,
		TokenTTL:     env.TokenTTL,
		SignedURLTTL: env.SignedURLTTL,
		Production:   env.IsProduction(),
	})

	server := http.Server{
		Addr:              env.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start the server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	log.Println("✅ Server stopped.")
}
