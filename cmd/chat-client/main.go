package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"collabchat/internal/common"
	"collabchat/internal/config"
	"collabchat/internal/di"
	"collabchat/internal/dispatch"
	"collabchat/internal/event"
	"collabchat/internal/message"
)

type loginResponse struct {
	Token string `json:"token"`
}

func login(apiAddr, actorID, name, role string) (string, error) {
	reqBody, _ := json.Marshal(map[string]string{
		"actor_id": actorID, "name": name, "role": role,
	})
	resp, err := http.Post(apiAddr+"/login", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("login failed: %s", string(body))
	}
	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", err
	}
	return lr.Token, nil
}

func main() {
	actorID := flag.String("user", "user1", "actor id")
	name := flag.String("name", "", "display name")
	role := flag.String("role", "member", "role: member, moderator or owner")
	channelID := flag.String("channel", "general", "channel id")
	flag.Parse()
	if *name == "" {
		*name = *actorID
	}

	cfg := config.LoadConfig()

	log.Printf("logging in as %s...", *actorID)
	token, err := login(cfg.Client.APIBaseURL, *actorID, *name, *role)
	if err != nil {
		log.Fatal("login failed: ", err)
	}

	actor := common.Actor{ID: *actorID, Name: *name, Role: common.Role(*role)}
	app, err := di.InitializeClient(di.Token(token), actor)
	if err != nil {
		log.Fatal("client init failed: ", err)
	}
	d := app.Dispatcher
	defer d.Close()

	d.OnUpdate(func(ev event.Event) {
		switch e := ev.(type) {
		case event.NewMessage:
			if e.Message.AuthorID != actor.ID {
				fmt.Printf("\r%s: %s\n> ", e.Message.AuthorID, d.Unwrap(&e.Message))
			}
		case event.Edited:
			fmt.Printf("\r[%s edited]\n> ", e.ID)
		case event.Deleted:
			fmt.Printf("\r[%s deleted]\n> ", e.ID)
		}
	})
	d.Typing().OnChange(func(names []string) {
		if len(names) > 0 {
			fmt.Printf("\r%s is typing...\n> ", strings.Join(names, ", "))
		}
	})

	ctx := context.Background()
	if err := d.Select(ctx, *channelID); err != nil {
		log.Fatal("channel select failed: ", err)
	}
	for _, m := range d.View() {
		fmt.Printf("%s: %s\n", m.AuthorID, m.Body)
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}
		if line == "/quit" {
			return
		}
		if strings.HasPrefix(line, "/") {
			runCommand(ctx, d, line)
		} else {
			d.Keystroke()
			if _, err := d.Send(ctx, dispatch.Draft{Content: line}); err != nil {
				fmt.Printf("send failed (kept for retry): %v\n", err)
			}
		}
		fmt.Print("> ")
	}
}

// runCommand handles slash commands: /edit, /del, /react, /reply, /star,
// /report, /poll, /vote, /retry, /switch, /list.
func runCommand(ctx context.Context, d *dispatch.Dispatcher, line string) {
	parts := strings.SplitN(line, " ", 3)
	var err error
	switch parts[0] {
	case "/edit":
		if len(parts) == 3 {
			err = d.Edit(ctx, parts[1], parts[2])
		}
	case "/del":
		if len(parts) >= 2 {
			err = d.Delete(ctx, parts[1])
		}
	case "/react":
		if len(parts) == 3 {
			err = d.React(ctx, parts[1], parts[2])
		}
	case "/reply":
		if len(parts) == 3 {
			_, err = d.Send(ctx, dispatch.Draft{Content: parts[2], ReplyTo: parts[1]})
		}
	case "/star":
		if len(parts) >= 2 {
			err = d.Star(ctx, parts[1])
		}
	case "/report":
		if len(parts) >= 3 {
			err = d.Report(ctx, parts[1], parts[2])
		}
	case "/poll":
		// /poll question | option | option [| multi]
		fields := strings.Split(strings.TrimPrefix(line, "/poll "), "|")
		if len(fields) >= 3 {
			for i := range fields {
				fields[i] = strings.TrimSpace(fields[i])
			}
			multi := fields[len(fields)-1] == "multi"
			if multi {
				fields = fields[:len(fields)-1]
			}
			poll := message.NewPoll(fields[0], fields[1:], multi)
			_, err = d.Send(ctx, dispatch.Draft{Content: fields[0], Poll: poll})
		}
	case "/vote":
		if len(parts) == 3 {
			var ids []int
			for _, raw := range strings.Split(parts[2], ",") {
				n, convErr := strconv.Atoi(strings.TrimSpace(raw))
				if convErr != nil {
					err = convErr
					break
				}
				ids = append(ids, n)
			}
			if err == nil {
				err = d.Vote(ctx, parts[1], ids)
			}
		}
	case "/retry":
		if len(parts) >= 2 {
			_, err = d.Retry(ctx, parts[1])
		}
	case "/switch":
		if len(parts) >= 2 {
			err = d.Select(ctx, parts[1])
		}
	case "/list":
		for _, m := range d.View() {
			marker := ""
			if m.Status == message.StatusPending {
				marker = " (pending)"
			} else if m.Status == message.StatusFailed {
				marker = " (failed)"
			}
			fmt.Printf("[%s] %s: %s%s\n", m.ID, m.AuthorID, m.Body, marker)
		}
	default:
		fmt.Println("unknown command")
	}
	if err != nil {
		fmt.Printf("command failed: %v\n", err)
	}
}
