package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ankh-social/ankh-backend/enhancer"
	"github.com/ankh-social/ankh-backend/events"
	"github.com/ankh-social/ankh-backend/model"
	"github.com/ankh-social/ankh-backend/service"
	"github.com/ankh-social/ankh-backend/storage"
	"github.com/ankh-social/ankh-backend/store"
	"github.com/ankh-social/ankh-backend/utils/dotenv"
	Logger "github.com/ankh-social/ankh-backend/utils/log"
)

// Demo driver: stands in for the presentation layer. Opens the local store,
// seeds the operator account and walks the feed operations end to end.
func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	dbPath := os.Getenv("ANKH_DB_PATH")
	if dbPath == "" {
		dbPath = "ankh.db"
	}

	kv, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		Logger.LogV2.Fatal(fmt.Sprintf("failed to open store: %v", err))
	}

	ctx := context.Background()
	bus := events.NewBus()
	defer bus.Close()

	svc := service.New(store.NewEntityStore(kv), service.NewTokenSignerFromEnv(), bus)
	if err := svc.Bootstrap(ctx, service.BootstrapConfigFromEnv()); err != nil {
		Logger.LogV2.Fatal(fmt.Sprintf("bootstrap failed: %v", err))
	}

	gen := enhancer.FromEnv(ctx)

	feedEvents, err := bus.Subscribe(ctx, events.TopicPosts)
	if err != nil {
		Logger.LogV2.Fatal(fmt.Sprintf("subscribe failed: %v", err))
	}
	go func() {
		for event := range feedEvents {
			Logger.LogV2.Info(fmt.Sprintf("event %s on %s", event.Type, event.EntityId))
		}
	}()

	user, err := svc.Register(ctx, service.RegisterInput{
		Name:      "Nefertari",
		Email:     fmt.Sprintf("nefertari+%d@ankh.io", os.Getpid()),
		Password:  "walk-like-an-egyptian",
		BirthDate: "1290-01-01",
	})
	if err != nil {
		Logger.LogV2.Fatal(fmt.Sprintf("register failed: %v", err))
	}

	token, _, err := svc.Login(ctx, user.Email, "walk-like-an-egyptian")
	if err != nil {
		Logger.LogV2.Fatal(fmt.Sprintf("login failed: %v", err))
	}
	Logger.LogV2.Info(fmt.Sprintf("logged in, token %.16s...", token))

	content := gen.EnhanceText(ctx, "Greetings from the eternal network")
	post, err := svc.CreatePost(ctx, service.CreatePostInput{
		UserId:     user.Id,
		AuthorName: user.Name,
		Content:    content,
	})
	if err != nil {
		Logger.LogV2.Fatal(fmt.Sprintf("create post failed: %v", err))
	}

	if _, err := svc.ReactToPost(ctx, post.Id, model.ReactionAnkh); err != nil {
		Logger.LogV2.Fatal(fmt.Sprintf("react failed: %v", err))
	}
	if _, err := svc.AddComment(ctx, post.Id, user.Name, "The river remembers."); err != nil {
		Logger.LogV2.Fatal(fmt.Sprintf("comment failed: %v", err))
	}

	posts, err := svc.ListPosts(ctx)
	if err != nil {
		Logger.LogV2.Fatal(fmt.Sprintf("list posts failed: %v", err))
	}
	for _, p := range posts {
		fmt.Printf("[%s] %s (%s): %s | reactions=%d views=%d comments=%d\n",
			p.CreatedAt.Format("2006-01-02 15:04"), p.AuthorName, p.AuthorVerified,
			p.Content, p.TotalReactions(), p.Views, len(p.Comments))
	}
}
