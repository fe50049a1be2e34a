// Command gatorblog is the terminal client for the GatorBlog API. It keeps a
// session on disk between runs and talks to the server with the same client
// packages the tests exercise.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/api"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/blogclient"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/config"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/guard"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/session"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/validation"

	"github.com/joho/godotenv"
)

const usage = `Usage: gatorblog <command> [args]

Commands:
  signup                  Register a new account
  login                   Sign in and store the session
  logout                  Clear the stored session
  whoami                  Show the signed-in user
  posts [-title T | -all | -popular]
                          List your posts, everyone's, or the top five
  post <id>               Show a single post with comments and likes
  new                     Write a new post
  edit <id>               Update a post you wrote
  delete <id>             Delete a post you wrote
  comment <id>            Comment on a post
  like <id>               Like a post, or take the like back
  reset-password          Run the password reset wizard`

type app struct {
	store  *session.Store
	client *blogclient.Client
	guard  *guard.Guard
	in     *bufio.Reader
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store := session.NewStore(session.NewFileStorage(cfg.SessionFile))
	store.Restore()

	apiClient := api.NewClient(cfg.APIBaseURL, store)
	apiClient.OnUnauthorized = func() {
		fmt.Fprintln(os.Stderr, "Your session has expired. Please log in again with `gatorblog login`.")
	}

	a := &app{
		store:  store,
		client: blogclient.New(apiClient),
		guard:  guard.New(store),
		in:     bufio.NewReader(os.Stdin),
	}

	ctx := context.Background()
	command, args := os.Args[1], os.Args[2:]

	if err := a.run(ctx, command, args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "signup":
		return a.signUp(ctx)
	case "login":
		return a.login(ctx)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami()
	case "reset-password":
		return a.resetPassword(ctx)
	case "posts":
		return a.requireLogin(func() error { return a.listPosts(ctx, args) })
	case "post":
		return a.requireLogin(func() error { return a.showPost(ctx, args) })
	case "new":
		return a.requireLogin(func() error { return a.newPost(ctx) })
	case "edit":
		return a.requireLogin(func() error { return a.editPost(ctx, args) })
	case "delete":
		return a.requireLogin(func() error { return a.deletePost(ctx, args) })
	case "comment":
		return a.requireLogin(func() error { return a.commentPost(ctx, args) })
	case "like":
		return a.requireLogin(func() error { return a.likePost(ctx, args) })
	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireLogin is the route guard for protected commands.
func (a *app) requireLogin(fn func() error) error {
	if err := a.guard.Require(); err != nil {
		return err
	}
	return fn()
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *app) confirm(label string) bool {
	answer := a.prompt(label + " [y/N]: ")
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

func parseBlogID(args []string) (uint, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected a post id")
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q", args[0])
	}
	return uint(id), nil
}

func (a *app) signUp(ctx context.Context) error {
	username := a.prompt("Username: ")
	email := a.prompt("UF email: ")
	password := a.prompt("Password: ")
	confirm := a.prompt("Confirm password: ")

	if err := validation.ValidateSignUp(username, email, password, confirm); err != nil {
		return err
	}

	result, err := a.client.SignUp(ctx, username, email, password)
	if err != nil {
		return err
	}
	if err := a.store.Login(result.Token, result.User); err != nil {
		return err
	}
	fmt.Printf("Welcome to GatorBlog, %s!\n", result.User.Username)
	return nil
}

func (a *app) login(ctx context.Context) error {
	email := a.prompt("UF email: ")
	password := a.prompt("Password: ")

	result, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.store.Login(result.Token, result.User); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s.\n", result.User.Username)
	return nil
}

func (a *app) logout() error {
	if err := a.store.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func (a *app) whoami() error {
	user := a.store.User()
	if user == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s> (id %d)\n", user.Username, user.Email, user.ID)

	if claims, err := session.ParseClaims(a.store.Token()); err == nil && claims.Expired() {
		fmt.Println("Note: the stored credential has expired; the next request will ask you to log in again.")
	}
	return nil
}

func (a *app) listPosts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("posts", flag.ContinueOnError)
	title := fs.String("title", "", "Filter your posts by title")
	all := fs.Bool("all", false, "List everyone's posts")
	popular := fs.Bool("popular", false, "List the five most-liked posts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		metas []models.BlogWithMeta
		err   error
	)
	switch {
	case *popular:
		metas, err = a.client.PopularBlogs(ctx)
	case *all:
		metas, err = a.client.ListAllBlogsWithMeta(ctx, *title)
	default:
		metas, err = a.client.ListBlogsWithMeta(ctx, *title)
	}
	if err != nil {
		return err
	}

	if len(metas) == 0 {
		fmt.Println("No posts yet.")
		return nil
	}
	for _, blog := range metas {
		fmt.Printf("#%d  %s  by %s  (%d likes, %d comments)\n",
			blog.ID, blog.Title, blog.UserName, blog.Likes, len(blog.Comments))
	}
	return nil
}

func (a *app) showPost(ctx context.Context, args []string) error {
	id, err := parseBlogID(args)
	if err != nil {
		return err
	}

	blog, err := a.client.GetBlog(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("#%d  %s\nby %s\n\n%s\n", blog.ID, blog.Title, blog.UserName, blog.Post)

	likes, err := a.client.ListLikes(ctx, id)
	if err != nil {
		return err
	}
	comments, err := a.client.ListComments(ctx, id)
	if err != nil {
		return err
	}

	liked := ""
	if user := a.store.User(); user != nil && models.LikedBy(likes, user.ID) {
		liked = " (including yours)"
	}
	fmt.Printf("\n%d likes%s, %d comments\n", len(likes), liked, len(comments))
	for _, comment := range comments {
		fmt.Printf("  %s: %s\n", comment.UserName, comment.Content)
	}
	return nil
}

func (a *app) newPost(ctx context.Context) error {
	title := a.prompt("Title: ")
	fmt.Println("Body (end with a single '.' on its own line):")
	body := a.readBody()

	blog, err := a.client.CreateBlog(ctx, blogclient.BlogInput{Title: title, Post: body})
	if err != nil {
		return err
	}
	fmt.Printf("Created post #%d.\n", blog.ID)
	return nil
}

func (a *app) readBody() string {
	var lines []string
	for {
		line, err := a.in.ReadString('\n')
		trimmed := strings.TrimRight(line, "\n")
		if trimmed == "." || err != nil {
			break
		}
		lines = append(lines, trimmed)
	}
	return strings.Join(lines, "\n")
}

func (a *app) editPost(ctx context.Context, args []string) error {
	id, err := parseBlogID(args)
	if err != nil {
		return err
	}

	current, err := a.client.GetBlog(ctx, id)
	if err != nil {
		return err
	}

	title := a.prompt(fmt.Sprintf("Title [%s]: ", current.Title))
	if title == "" {
		title = current.Title
	}
	fmt.Println("New body (end with a single '.' on its own line):")
	body := a.readBody()
	if body == "" {
		body = current.Post
	}

	if err := a.client.UpdateBlog(ctx, id, blogclient.BlogInput{Title: title, Post: body}); err != nil {
		return err
	}
	fmt.Printf("Updated post #%d.\n", id)
	return nil
}

func (a *app) deletePost(ctx context.Context, args []string) error {
	id, err := parseBlogID(args)
	if err != nil {
		return err
	}

	if !a.confirm(fmt.Sprintf("Delete post #%d?", id)) {
		fmt.Println("Kept it.")
		return nil
	}
	if err := a.client.DeleteBlog(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted post #%d.\n", id)
	return nil
}

func (a *app) commentPost(ctx context.Context, args []string) error {
	id, err := parseBlogID(args)
	if err != nil {
		return err
	}

	content := a.prompt("Comment: ")
	if content == "" {
		return fmt.Errorf("comment cannot be empty")
	}

	user := a.store.User()
	if _, err := a.client.AddComment(ctx, id, content, user.ID); err != nil {
		return err
	}
	fmt.Println("Comment posted.")
	return nil
}

func (a *app) likePost(ctx context.Context, args []string) error {
	id, err := parseBlogID(args)
	if err != nil {
		return err
	}

	user := a.store.User()
	liked, err := a.client.ToggleLike(ctx, id, user.ID)
	if err != nil {
		return err
	}
	if liked {
		fmt.Printf("Liked post #%d.\n", id)
	} else {
		fmt.Printf("Removed your like from post #%d.\n", id)
	}
	return nil
}

func (a *app) resetPassword(ctx context.Context) error {
	email := a.prompt("UF email: ")
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	if err := a.client.RequestResetCode(ctx, email); err != nil {
		return err
	}
	fmt.Println("A 6-digit code has been sent to your email. It expires in 10 minutes.")

	code := a.prompt("Code: ")
	if err := a.client.VerifyResetCode(ctx, email, code); err != nil {
		return err
	}

	password := a.prompt("New password: ")
	confirm := a.prompt("Confirm new password: ")
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}
	if err := validation.ValidatePasswordMatch(password, confirm); err != nil {
		return err
	}

	if err := a.client.ResetPassword(ctx, email, password); err != nil {
		return err
	}
	fmt.Println("Password updated. Log in with `gatorblog login`.")
	return nil
}
