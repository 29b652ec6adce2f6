// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/taibuivan/twittish/internal/content"
	"github.com/taibuivan/twittish/internal/engine"
	"github.com/taibuivan/twittish/internal/notify"
	"github.com/taibuivan/twittish/internal/view"
)

// app is the terminal presentation layer. It holds view state only (current
// navigation target, media filter); every entity read and every mutation goes
// through the engine.
type app struct {
	engine *engine.Engine
	reader *bufio.Reader
	out    io.Writer

	target    view.Target
	mediaOnly bool
}

func newApp(core *engine.Engine, reader *bufio.Reader, out io.Writer) *app {
	return &app{
		engine: core,
		reader: reader,
		out:    out,
		target: view.Home(),
	}
}

// run starts the read-eval-print loop.
//
// It reads a line, parses the first token as the command, and dispatches.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit". Command handlers print their own
// errors; the loop stays resilient and focused on I/O.
func (a *app) run(ctx context.Context) {
	a.renderFeed()

	for {
		fmt.Fprintf(a.out, "tw %s> ", a.status())

		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, rest := parts[0], strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), parts[0]))

		switch cmd {
		case "help":
			a.printHelp()

		case "feed", "home":
			a.navigate(view.Home())
		case "latest":
			a.navigate(view.Latest())
		case "profile":
			a.navigate(view.Profile(strings.TrimPrefix(rest, "@")))
		case "thread":
			a.navigate(view.Thread(rest))
		case "search":
			a.navigate(view.Search(rest))
		case "tag":
			a.navigate(view.TagFilter(strings.TrimPrefix(rest, "#")))
		case "open":
			if target, ok := view.ParseTarget(rest); ok {
				a.navigate(target)
			} else {
				fmt.Fprintf(a.out, "bad route %q (try home, latest, profile:@name, thread:<id>, search:<q>, tag:<t>)\n", rest)
			}
		case "media":
			a.mediaOnly = !a.mediaOnly
			fmt.Fprintf(a.out, "media-only filter: %v\n", a.mediaOnly)
			a.renderFeed()

		case "post":
			a.post(ctx, rest)
		case "reply":
			a.reply(ctx, rest)
		case "like":
			a.like(ctx, rest)

		case "users":
			a.searchUsers(rest)
		case "notifs":
			a.showNotifications()
		case "read":
			a.report(a.engine.MarkNotificationsRead(ctx))

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.report(a.engine.Logout(ctx))
		case "whoami":
			a.whoami()
		case "edit":
			a.editProfile(ctx)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintf(a.out, "Unknown command: %s (try help)\n", cmd)
		}
	}
}

// status renders the prompt segment: session user and unread badge.
func (a *app) status() string {
	user := a.engine.CurrentUser()
	if user == nil {
		return "guest "
	}
	if unread := a.engine.UnreadCount(); unread > 0 {
		return fmt.Sprintf("@%s (%d) ", user.Username, unread)
	}
	return "@" + user.Username + " "
}

func (a *app) printHelp() {
	fmt.Fprintln(a.out, `Navigation:  feed | latest | profile @name | thread <id> | search <q> | tag <t> | open <route> | media
Posting:     post <text> | reply <postId> <text> | like <postId>
Account:     register | login | logout | whoami | edit
Inbox:       notifs | read
Other:       users <q> | help | exit`)
}

// # Navigation and rendering

func (a *app) navigate(target view.Target) {
	a.target = target
	a.renderFeed()
}

func (a *app) renderFeed() {
	posts := a.engine.Feed(a.target, view.Options{MediaOnly: a.mediaOnly})

	fmt.Fprintf(a.out, "── %s ──\n", a.target)
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet")
		return
	}
	for _, post := range posts {
		a.renderPost(post)
	}
}

func (a *app) renderPost(post *content.Post) {
	fmt.Fprintf(a.out, "[%s] @%s (%s) %s\n", post.ID, post.AuthorUsername, post.AuthorDisplay,
		post.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(a.out, "    %s\n", post.Content)
	if post.MediaRef != "" {
		fmt.Fprintf(a.out, "    media: %s\n", post.MediaRef)
	}
	fmt.Fprintf(a.out, "    likes: %d  replies: %d\n", len(post.LikedBy), len(post.ReplyIDs))
}

// # Mutations

func (a *app) post(ctx context.Context, text string) {
	mediaRef, err := promptLine(a.reader, "Media ref (empty for none)", a.out)
	if err != nil {
		return
	}
	if _, err := a.engine.CreatePost(ctx, text, mediaRef); err != nil {
		a.report(err)
		return
	}
	a.renderFeed()
}

func (a *app) reply(ctx context.Context, rest string) {
	postID, text, _ := strings.Cut(rest, " ")
	if _, err := a.engine.CreateReply(ctx, postID, strings.TrimSpace(text)); err != nil {
		a.report(err)
		return
	}
	a.navigate(view.Thread(postID))
}

func (a *app) like(ctx context.Context, postID string) {
	liked, err := a.engine.ToggleLike(ctx, postID)
	if err != nil {
		a.report(err)
		return
	}
	if liked {
		fmt.Fprintln(a.out, "liked")
	} else {
		fmt.Fprintln(a.out, "unliked")
	}
}

func (a *app) register(ctx context.Context) {
	email, err := promptLine(a.reader, "Email", a.out)
	if err != nil {
		return
	}
	username, err := promptLine(a.reader, "Username", a.out)
	if err != nil {
		return
	}
	secret, err := promptSecret(a.out, "Password")
	if err != nil {
		return
	}
	user, err := a.engine.Register(ctx, email, username, secret)
	if err != nil {
		a.report(err)
		return
	}
	fmt.Fprintf(a.out, "Welcome, @%s!\n", user.Username)
}

func (a *app) login(ctx context.Context) {
	identifier, err := promptLine(a.reader, "Username or email", a.out)
	if err != nil {
		return
	}
	secret, err := promptSecret(a.out, "Password")
	if err != nil {
		return
	}
	user, err := a.engine.Login(ctx, identifier, secret)
	if err != nil {
		a.report(err)
		return
	}
	fmt.Fprintf(a.out, "Hello again, @%s\n", user.Username)
}

func (a *app) editProfile(ctx context.Context) {
	display, err := promptLine(a.reader, "Display name", a.out)
	if err != nil {
		return
	}
	bio, err := promptLine(a.reader, "Bio", a.out)
	if err != nil {
		return
	}
	avatarRef, err := promptLine(a.reader, "Avatar ref", a.out)
	if err != nil {
		return
	}
	_, uerr := a.engine.UpdateProfile(ctx, display, bio, avatarRef)
	a.report(uerr)
}

// # Read-only views

func (a *app) whoami() {
	user := a.engine.CurrentUser()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	fmt.Fprintf(a.out, "@%s — %s\n", user.Username, user.DisplayName)
	if user.Bio != "" {
		fmt.Fprintln(a.out, user.Bio)
	}
}

func (a *app) searchUsers(query string) {
	users := a.engine.SearchUsers(query)
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found")
		return
	}
	for _, user := range users {
		fmt.Fprintf(a.out, "@%s (%s)\n", user.Username, user.DisplayName)
	}
}

func (a *app) showNotifications() {
	entries := a.engine.Notifications()
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No notifications")
		return
	}
	// Newest first for display; the ledger itself is oldest first.
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		marker := " "
		if !entry.Read {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s @%s %s %s\n", marker, entry.ActorUsername, describe(entry.Kind),
			entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func describe(kind notify.Kind) string {
	switch kind {
	case notify.KindLike:
		return "liked your post"
	case notify.KindReply:
		return "replied to your post"
	case notify.KindMention:
		return "mentioned you"
	case notify.KindFollow:
		return "followed you"
	default:
		return string(kind)
	}
}

// report prints an error to the user, if any.
func (a *app) report(err error) {
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
	}
}
