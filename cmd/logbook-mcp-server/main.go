package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"goldpan/internal/prompt"
	"goldpan/internal/sheetlog"
)

// SearchHistoryParams are the search_history tool arguments
type SearchHistoryParams struct {
	Query string `json:"query,omitempty" mcp:"substring to match against record content or tag (empty returns the newest records)"`
	Limit int    `json:"limit,omitempty" mcp:"maximum number of records to return (default: 20, max: 100)"`
}

// AppendNoteParams are the append_note tool arguments
type AppendNoteParams struct {
	Category string `json:"category,omitempty" mcp:"note category: question, idea or note (default: note)"`
	Content  string `json:"content" mcp:"the note text to record"`
}

// LogbookServer exposes the conversation log over MCP.
type LogbookServer struct {
	writer *sheetlog.Writer
	reader *sheetlog.Reader
}

func (s *LogbookServer) SearchHistory(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[SearchHistoryParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	limit := args.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	query := strings.ToLower(strings.TrimSpace(args.Query))
	var lines []string
	for _, rec := range s.reader.FetchAll(ctx) {
		if query != "" &&
			!strings.Contains(strings.ToLower(rec.Content), query) &&
			!strings.Contains(strings.ToLower(rec.Tag), query) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s [%s/%s] %s", rec.Timestamp, rec.Role, rec.Tag, rec.Content))
		if len(lines) >= limit {
			break
		}
	}

	if len(lines) == 0 {
		return &mcp.CallToolResultFor[any]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: "No matching log records."},
			},
			Meta: map[string]interface{}{"total_found": 0, "success": true},
		}, nil
	}
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: strings.Join(lines, "\n")},
		},
		Meta: map[string]interface{}{"total_found": len(lines), "limit": limit, "success": true},
	}, nil
}

func (s *LogbookServer) AppendNote(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[AppendNoteParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	if strings.TrimSpace(args.Content) == "" {
		return &mcp.CallToolResultFor[any]{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: "❌ content is required"},
			},
		}, nil
	}

	tag := prompt.TagFor(args.Category)
	if err := s.writer.Append(ctx, sheetlog.RoleUser, tag, args.Content); err != nil {
		return &mcp.CallToolResultFor[any]{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("❌ Failed to record note: %v", err)},
			},
		}, nil
	}
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("✅ Note recorded with tag %q", tag)},
		},
		Meta: map[string]interface{}{"tag": tag, "success": true},
	}, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	spreadsheetID := os.Getenv("SPREADSHEET_ID")
	if spreadsheetID == "" {
		log.Fatal("❌ SPREADSHEET_ID environment variable is required")
	}
	sheetName := os.Getenv("SHEET_NAME")
	if sheetName == "" {
		sheetName = "log"
	}

	connector := sheetlog.NewConnector(func(ctx context.Context) (sheetlog.RowStore, error) {
		creds, err := loadCredentials()
		if err != nil {
			return nil, err
		}
		return sheetlog.OpenSheet(ctx, creds, spreadsheetID, sheetName)
	})
	logbook := &LogbookServer{
		writer: sheetlog.NewWriter(connector),
		reader: sheetlog.NewReader(connector),
	}

	log.Printf("🚀 Starting Goldpan Logbook MCP Server")

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "goldpan-logbook-mcp",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_history",
		Description: "Searches the conversation log, newest records first",
	}, logbook.SearchHistory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "append_note",
		Description: "Records a user note in the conversation log",
	}, logbook.AppendNote)

	log.Printf("📋 Registered 2 tools: search_history, append_note")
	log.Printf("🔗 Starting server on stdin/stdout...")

	transport := mcp.NewStdioTransport()
	if err := server.Run(context.Background(), transport); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func loadCredentials() ([]byte, error) {
	if inline := os.Getenv("GOOGLE_CREDENTIALS_JSON"); inline != "" {
		return []byte(inline), nil
	}
	path := os.Getenv("GOOGLE_CREDENTIALS_PATH")
	if path == "" {
		path = "data/service_account.json"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account credentials: %w", err)
	}
	return data, nil
}
