package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/iliyamo/video-summarizer/internal/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// App drives the interactive loop. It owns the Session and routes on
// its current screen; every state change goes through the session's
// transition methods so the screen/authenticated/username invariant
// holds at all times.
type App struct {
	API  *API
	Sess *session.Session
	In   *bufio.Reader
	Out  io.Writer
}

func NewApp(api *API, in *bufio.Reader, out io.Writer) *App {
	return &App{API: api, Sess: session.New(), In: in, Out: out}
}

// Run loops until the user quits. Each iteration renders the current
// screen and handles one action; errors are reported and the loop
// continues on the same screen.
func (a *App) Run(ctx context.Context) error {
	for {
		var (
			done bool
			err  error
		)
		switch a.Sess.Screen() {
		case session.ScreenLogin:
			done, err = a.loginScreen(ctx)
		case session.ScreenCreateAccount:
			done, err = a.createAccountScreen(ctx)
		case session.ScreenMain:
			done, err = a.mainScreen(ctx)
		}
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// loginScreen handles one action on the login screen: sign in, switch
// to account creation, or quit.
func (a *App) loginScreen(ctx context.Context) (bool, error) {
	printlnFn("--- Login ---")
	choice, err := ReadLine(a.In, "[1] Sign in  [2] Create account  [q] Quit", a.Out)
	if err != nil {
		return true, nil // EOF ends the session
	}
	switch choice {
	case "1":
		username, err := ReadLine(a.In, "Username", a.Out)
		if err != nil {
			return true, nil
		}
		password, err := ReadPassword("Password", a.Out)
		if err != nil {
			return false, err
		}
		if err := a.API.Login(ctx, username, password); err != nil {
			_ = a.Sess.LoginFailed()
			printlnFn("Error:", err.Error())
			return false, nil
		}
		if err := a.Sess.LoginSucceeded(username); err != nil {
			return false, err
		}
		printlnFn("Welcome,", username)
	case "2":
		if err := a.Sess.GoToCreateAccount(); err != nil {
			return false, err
		}
	case "q", "quit", "exit":
		return true, nil
	default:
		printlnFn("Unknown choice:", choice)
	}
	return false, nil
}

// createAccountScreen handles one action on the create-account screen.
// A successful registration emits a success notice and returns to the
// login screen; a rejected one keeps the user here.
func (a *App) createAccountScreen(ctx context.Context) (bool, error) {
	printlnFn("--- Create Account ---")
	choice, err := ReadLine(a.In, "[1] Sign up  [2] Back to sign in  [q] Quit", a.Out)
	if err != nil {
		return true, nil
	}
	switch choice {
	case "1":
		username, err := ReadLine(a.In, "Choose a username", a.Out)
		if err != nil {
			return true, nil
		}
		password, err := ReadPassword("Choose a password", a.Out)
		if err != nil {
			return false, err
		}
		if username == "" || password == "" {
			_ = a.Sess.AccountRejected()
			printlnFn("Error: enter valid credentials.")
			return false, nil
		}
		if err := a.API.Register(ctx, username, password); err != nil {
			_ = a.Sess.AccountRejected()
			if IsStatus(err, http.StatusConflict) {
				printlnFn("Error: username already exists.")
			} else {
				printlnFn("Error:", err.Error())
			}
			return false, nil
		}
		if err := a.Sess.AccountCreated(); err != nil {
			return false, err
		}
		printlnFn("Account created! Please log in.")
	case "2":
		if err := a.Sess.GoToLogin(); err != nil {
			return false, err
		}
	case "q", "quit", "exit":
		return true, nil
	default:
		printlnFn("Unknown choice:", choice)
	}
	return false, nil
}

// mainScreen handles one action on the main screen: submit a URL for
// summarization, show history, or log out.
func (a *App) mainScreen(ctx context.Context) (bool, error) {
	printlnFn(fmt.Sprintf("--- Video Summarizer (%s) ---", a.Sess.Username()))
	a.printHistory(ctx)

	choice, err := ReadLine(a.In, "[1] Summarize a video  [2] Refresh history  [3] Logout  [q] Quit", a.Out)
	if err != nil {
		return true, nil
	}
	switch choice {
	case "1":
		if err := a.summarize(ctx); err != nil {
			return false, err
		}
	case "2":
		// History reprints at the top of the next iteration.
	case "3":
		_ = a.API.Logout(ctx)
		if err := a.Sess.Logout(); err != nil {
			return false, err
		}
		printlnFn("Logged out.")
	case "q", "quit", "exit":
		return true, nil
	default:
		printlnFn("Unknown choice:", choice)
	}
	return false, nil
}

// summarize prompts for a URL and a language, submits the request, and
// prints the result. The session guard runs before anything else so an
// unauthenticated session never reaches the server.
func (a *App) summarize(ctx context.Context) error {
	if err := a.Sess.RequireAuthenticated(); err != nil {
		printlnFn("Error:", err.Error())
		return nil
	}

	url, err := ReadLine(a.In, "Paste a video URL to summarize", a.Out)
	if err != nil {
		return nil
	}
	if url == "" {
		printlnFn("Please enter a video URL.")
		return nil
	}

	langs, err := a.API.Languages(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return nil
	}
	language, ok := a.pickLanguage(langs)
	if !ok {
		return nil
	}

	printlnFn("Summarizing, this can take a while...")
	res, err := a.API.Summarize(ctx, url, language)
	if err != nil {
		printlnFn("Error:", err.Error())
		return nil
	}

	printlnFn("")
	printlnFn("Title:  ", res.Title)
	printlnFn("Channel:", res.Channel)
	printlnFn("")
	printlnFn(res.Summary)
	printlnFn("")
	printlnFn("Summary saved to history!")
	return nil
}

// pickLanguage renders a numbered language selector and returns the
// chosen name. An out-of-range or non-numeric choice cancels.
func (a *App) pickLanguage(langs []string) (string, bool) {
	if len(langs) == 0 {
		printlnFn("No languages available.")
		return "", false
	}
	var sb strings.Builder
	sb.WriteString("Select language:")
	for i, l := range langs {
		sb.WriteString(fmt.Sprintf("\n  [%d] %s", i+1, l))
	}
	choice, err := ReadLine(a.In, sb.String(), a.Out)
	if err != nil {
		return "", false
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(langs) {
		printlnFn("Invalid selection.")
		return "", false
	}
	return langs[n-1], true
}

// printHistory shows the caller's newest summaries, truncated previews
// only, mirroring the sidebar of the original interface.
func (a *App) printHistory(ctx context.Context) {
	entries, err := a.API.History(ctx)
	if err != nil {
		printlnFn("(history unavailable:", err.Error()+")")
		return
	}
	if len(entries) == 0 {
		printlnFn("No history yet. Summarize a video!")
		return
	}
	printlnFn("Your summaries:")
	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = "Video"
		}
		preview := e.Summary
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		printlnFn(fmt.Sprintf("  %s (%s)\n    %s\n    %s",
			title, e.CreatedAt.Format("2006-01-02"), e.URL, preview))
	}
}
