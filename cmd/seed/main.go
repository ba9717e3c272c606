// Seed fills a running postbook instance with demo data: groups go
// straight into the database (they are admin-created, there is no HTTP
// surface for them), users and posts go through the real signup, login
// and create endpoints.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"

	"github.com/avelichko/postbook/internal/db"
	"github.com/avelichko/postbook/internal/models"
	"github.com/avelichko/postbook/internal/store"
)

func main() {
	baseURL := flag.String("url", "http://localhost:4000", "base URL of the running server")
	users := flag.Int("users", 5, "number of users to create")
	postsPer := flag.Int("posts", 8, "posts per user")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	gofakeit.Seed(time.Now().UnixNano())

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	dbConn, err := db.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	groups := seedGroups(store.NewPostgres(dbConn))

	for i := 0; i < *users; i++ {
		username := gofakeit.Username()
		password := "seed-" + gofakeit.Password(true, true, true, false, false, 8)

		client := newClient()
		register(client, *baseURL, username, password)
		login(client, *baseURL, username, password)

		for j := 0; j < *postsPer; j++ {
			var groupID string
			if gofakeit.Bool() && len(groups) > 0 {
				groupID = strconv.FormatInt(groups[gofakeit.Number(0, len(groups)-1)].ID, 10)
			}
			createPost(client, *baseURL, gofakeit.HipsterSentence(12), groupID)
		}
		log.Printf("seeded user %s with %d posts", username, *postsPer)
	}
}

func seedGroups(st *store.PostgresStore) []models.Group {
	ctx := context.Background()

	wanted := []models.Group{
		{Title: "Путешествия", Slug: "travel", Description: "Заметки из поездок"},
		{Title: "Кухня", Slug: "cooking", Description: "Рецепты и эксперименты"},
		{Title: "Книги", Slug: "books", Description: "Что читаем"},
	}

	var groups []models.Group
	for _, g := range wanted {
		existing, err := st.GroupBySlug(ctx, g.Slug)
		if err == nil {
			groups = append(groups, *existing)
			continue
		}
		if err := st.CreateGroup(ctx, &g); err != nil {
			log.Fatalf("seed group %s: %v", g.Slug, err)
		}
		groups = append(groups, g)
	}
	return groups
}

func newClient() *http.Client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

func postForm(client *http.Client, target string, form url.Values) {
	resp, err := client.PostForm(target, form)
	if err != nil {
		log.Fatalf("POST %s: %v", target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		log.Fatalf("POST %s: unexpected status %d", target, resp.StatusCode)
	}
}

func register(client *http.Client, base, username, password string) {
	postForm(client, base+"/auth/signup/", url.Values{
		"username":   {username},
		"first_name": {gofakeit.FirstName()},
		"last_name":  {gofakeit.LastName()},
		"email":      {gofakeit.Email()},
		"password1":  {password},
		"password2":  {password},
	})
}

func login(client *http.Client, base, username, password string) {
	postForm(client, base+"/auth/login/", url.Values{
		"username": {username},
		"password": {password},
	})
}

func createPost(client *http.Client, base, text, groupID string) {
	form := url.Values{"text": {text}}
	if groupID != "" {
		form.Set("group", groupID)
	}
	postForm(client, base+"/create/", form)
}
