package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"chatbackend/internal/config"
	llmSvc "chatbackend/internal/domain/services/llm"
	"chatbackend/internal/prompts"
	"chatbackend/internal/repository"
	serviceLLM "chatbackend/internal/service/llm"
	"chatbackend/internal/service/llm/chat"
	"chatbackend/internal/service/llm/exchange"

	"github.com/joho/godotenv"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
)

// CLI is an interactive terminal client that runs exchanges against the
// configured store and providers without going through HTTP.
type CLI struct {
	ctx      context.Context
	chats    llmSvc.ChatService
	exchange llmSvc.ExchangeService
	scanner  *bufio.Scanner
	chatID   string
	model    string
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fail("invalid configuration: %v", err)
	}

	// Keep the terminal readable: only warnings and errors on stderr
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		fail("failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer store.Close(ctx)

	promptSet, err := prompts.Load(cfg.PromptsFile)
	if err != nil {
		fail("failed to load prompts: %v", err)
	}
	aiClient, err := serviceLLM.SetupClient(cfg, promptSet, logger)
	if err != nil {
		fail("failed to set up AI client: %v", err)
	}
	loc, _ := cfg.Location()

	cli := &CLI{
		ctx:   ctx,
		chats: chat.NewService(store.Chats, store.Messages, store.Tx, loc, logger),
		exchange: exchange.NewService(store.Chats, store.Messages, aiClient, promptSet, exchange.Config{
			HistoryWindow: cfg.HistoryWindow,
			Location:      loc,
		}, logger),
		scanner: bufio.NewScanner(os.Stdin),
		model:   cfg.DefaultModel,
	}

	fmt.Printf("%sChat CLI%s (store: %s, model: %s)\n", colorBlue, colorReset, store.Driver, cli.model)
	fmt.Println("Commands: /new [title], /list, /open <id>, /model <name>, /quit")
	cli.run()
}

func (c *CLI) run() {
	for {
		fmt.Printf("%s> %s", colorGreen, colorReset)
		if !c.scanner.Scan() {
			return
		}
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" {
			continue
		}

		cmd, arg, _ := strings.Cut(line, " ")
		switch cmd {
		case "/quit", "/exit":
			return
		case "/new":
			c.newChat(arg)
		case "/list":
			c.list()
		case "/open":
			c.open(strings.TrimSpace(arg))
		case "/model":
			c.model = strings.TrimSpace(arg)
			fmt.Printf("%smodel set to %s%s\n", colorYellow, c.model, colorReset)
		default:
			c.send(line)
		}
	}
}

func (c *CLI) newChat(title string) {
	created, err := c.chats.CreateChat(c.ctx, &llmSvc.CreateChatRequest{Title: title})
	if err != nil {
		printErr(err)
		return
	}
	c.chatID = created.ID
	fmt.Printf("%screated %q (%s)%s\n", colorYellow, created.Title, created.ID, colorReset)
}

func (c *CLI) list() {
	summaries, err := c.chats.ListChats(c.ctx)
	if err != nil {
		printErr(err)
		return
	}
	for _, s := range summaries {
		fmt.Printf("%s  %-30s %3d msgs  %-12s  %s\n", s.ID, s.Title, s.MessageCount, s.Timestamp, s.Preview)
	}
}

func (c *CLI) open(id string) {
	views, err := c.chats.ListMessages(c.ctx, id)
	if err != nil {
		printErr(err)
		return
	}
	c.chatID = id
	for _, v := range views {
		fmt.Printf("[%s] %s: %s\n", v.Timestamp, v.Sender, v.Text)
	}
}

func (c *CLI) send(text string) {
	if c.chatID == "" {
		c.newChat("")
		if c.chatID == "" {
			return
		}
	}

	result, err := c.exchange.Exchange(c.ctx, &llmSvc.ExchangeRequest{
		ChatID:  c.chatID,
		Message: text,
		Model:   c.model,
	})
	if err != nil {
		printErr(err)
		return
	}
	fmt.Printf("%s[%s] ai:%s %s\n", colorBlue, result.AIResponse.Timestamp, colorReset, result.AIResponse.Text)
}

func printErr(err error) {
	fmt.Printf("%serror: %v%s\n", colorRed, err, colorReset)
}

func fail(format string, args ...interface{}) {
	fmt.Printf("%s"+format+"%s\n", append(append([]interface{}{colorRed}, args...), colorReset)...)
	os.Exit(1)
}
