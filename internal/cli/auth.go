package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/matzehuels/figx/pkg/config"
	"github.com/matzehuels/figx/pkg/figma"
)

// authCommand implements `figx auth [--delete] [--remote ID]` (spec §6):
// figx stores a Figma personal access token per remote in the local
// keychain, in place of the teacher's GitHub OAuth device flow (a design
// service hands out a personal access token pasted in by the user, not an
// authorization-code exchange). Without --delete it opens a local callback
// page in the browser and waits for the token to be submitted, verifies it
// against the design service, then persists it; with --delete it forgets
// the stored token. --remote selects which declared remote the token
// belongs to, defaulting to the workspace's default remote. The token is
// never logged or printed.
func (c *CLI) authCommand() *cobra.Command {
	var remoteID string
	var del bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Store or remove the access token used to reach the design service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace()
			if err != nil {
				return err
			}
			remote, err := selectRemote(ws, remoteID)
			if err != nil {
				return err
			}

			kc, err := NewFileKeychain()
			if err != nil {
				return err
			}

			if del {
				if err := kc.Delete(keychainService, remote.ID); err != nil {
					return fmt.Errorf("auth: %w", err)
				}
				printSuccess("Removed stored token for remote %q", remote.ID)
				return nil
			}

			token, err := captureTokenInBrowser(cmd.Context())
			if err != nil {
				return fmt.Errorf("auth: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			user, err := figma.NewClient(defaultHTTPDoer()).WhoAmI(ctx, token)
			if err != nil {
				return fmt.Errorf("auth: token rejected by the design service: %w", err)
			}

			if err := kc.Set(keychainService, remote.ID, token); err != nil {
				return fmt.Errorf("auth: save token: %w", err)
			}
			printSuccess("Stored token for remote %q", remote.ID)
			printKeyValue("Handle", user.Handle)
			return nil
		},
	}

	cmd.Flags().BoolVar(&del, "delete", false, "remove the stored token instead of capturing a new one")
	cmd.Flags().StringVar(&remoteID, "remote", "", "remote ID to store the token under (defaults to the workspace's default remote)")
	return cmd
}

// selectRemote resolves id against ws, falling back to the workspace's
// default remote when id is empty.
func selectRemote(ws *config.Workspace, id string) (config.RemoteSource, error) {
	if id != "" {
		r, ok := ws.Remote(id)
		if !ok {
			return config.RemoteSource{}, fmt.Errorf("no remote %q declared in workspace", id)
		}
		return r, nil
	}
	r, ok := ws.DefaultRemote()
	if !ok {
		return config.RemoteSource{}, fmt.Errorf("workspace declares more than one remote; pass --remote")
	}
	return r, nil
}

// captureTokenInBrowser opens a local HTML page in the user's browser,
// prompting them to paste a personal access token, and blocks until the
// page posts it back to the local callback server.
func captureTokenInBrowser(ctx context.Context) (string, error) {
	received := make(chan string, 1)
	srv, port, err := startTokenCallbackServer(received)
	if err != nil {
		return "", fmt.Errorf("start local callback server: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	loginURL := fmt.Sprintf("http://localhost:%d/", port)
	fmt.Printf("Open %s in your browser and paste your access token\n", loginURL)
	browser.Stdout = nil
	browser.Stderr = nil
	if err := browser.OpenURL(loginURL); err != nil {
		fmt.Println("Could not open a browser automatically; open the link above yourself")
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case tok := <-received:
		if tok == "" {
			return "", fmt.Errorf("no token submitted")
		}
		return tok, nil
	case <-time.After(5 * time.Minute):
		return "", fmt.Errorf("timed out waiting for a token")
	}
}

func startTokenCallbackServer(received chan<- string) (*http.Server, int, error) {
	ln, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return nil, 0, err
	}
	_, portStr, err := net.SplitHostPort(ln.Addr().String())
	if err != nil {
		ln.Close()
		return nil, 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		ln.Close()
		return nil, 0, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, tokenCaptureHTML)
	})
	mux.HandleFunc("/save_token", func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Figma-Token")
		if token == "" {
			token = r.FormValue("token")
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if token == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, "missing token")
			return
		}
		fmt.Fprint(w, "Token received, you can close this tab")
		received <- token
	})

	srv := &http.Server{
		Handler:           mux,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
	go srv.Serve(ln) //nolint:errcheck

	return srv, port, nil
}

const tokenCaptureHTML = `<!DOCTYPE html>
<html>
<head><title>figx auth</title></head>
<body>
<h1>figx</h1>
<p>Paste a Figma personal access token and submit.</p>
<form id="f">
  <input type="password" id="token" placeholder="figd_..." size="60" />
  <button type="submit">Save</button>
</form>
<script>
document.getElementById("f").addEventListener("submit", function (e) {
  e.preventDefault();
  fetch("/save_token", {
    method: "POST",
    headers: {"X-Figma-Token": document.getElementById("token").value},
  }).then(function (r) { return r.text(); }).then(function (t) {
    document.body.innerHTML = "<p>" + t + "</p>";
  });
});
</script>
</body>
</html>
`
