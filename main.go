package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	log.SetPrefix("true-trend-api: ")
	log.SetFlags(0)

	// .env is optional in production — env vars may come from the platform.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	h := &Handler{db: getDBPool()}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	// The web frontend is served from a different origin, so wrap the gin
	// engine in a CORS handler rather than per-route headers.
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"*"},
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(router)))
}
