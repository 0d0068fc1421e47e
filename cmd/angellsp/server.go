package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
)

// LanguageServer holds every open document and the stream responses are
// written to.
type LanguageServer struct {
	documents map[string]*DocumentState
	mu        sync.RWMutex
	writer    io.Writer
}

func NewLanguageServer(writer io.Writer) *LanguageServer {
	return &LanguageServer{documents: make(map[string]*DocumentState), writer: writer}
}

// Start reads Content-Length-framed JSON-RPC messages from stdin until EOF.
func (s *LanguageServer) Start() {
	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Printf("error reading header: %v", err)
			}
			return
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "Content-Length: ") {
			continue
		}
		length, err := strconv.Atoi(strings.TrimPrefix(line, "Content-Length: "))
		if err != nil {
			log.Printf("bad Content-Length: %v", err)
			continue
		}
		for {
			sep, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			if strings.TrimRight(sep, "\r\n") == "" {
				break
			}
		}
		content := make([]byte, length)
		if _, err := io.ReadFull(reader, content); err != nil {
			log.Printf("error reading body: %v", err)
			return
		}
		if err := s.handleMessage(content); err != nil {
			log.Printf("error handling message: %v", err)
		}
	}
}

type baseMessage struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func (s *LanguageServer) handleMessage(content []byte) error {
	var msg baseMessage
	if err := json.Unmarshal(content, &msg); err != nil {
		return fmt.Errorf("unmarshal message: %w", err)
	}
	if msg.ID != nil {
		return s.handleRequest(msg)
	}
	return s.handleNotification(msg)
}

func (s *LanguageServer) handleRequest(msg baseMessage) error {
	switch msg.Method {
	case "initialize":
		return s.reply(msg.ID, InitializeResult{Capabilities: ServerCapabilities{
			TextDocumentSync:   1,
			HoverProvider:      true,
			DefinitionProvider: true,
			CompletionProvider: &CompletionOptions{TriggerCharacters: []string{".", "::"}},
		}}, nil)
	case "shutdown":
		return s.reply(msg.ID, nil, nil)
	case "textDocument/hover":
		var params TextDocumentPositionParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return err
		}
		return s.reply(msg.ID, s.handleHover(params), nil)
	case "textDocument/definition":
		var params TextDocumentPositionParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return err
		}
		return s.reply(msg.ID, s.handleDefinition(params), nil)
	case "textDocument/completion":
		var params TextDocumentPositionParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return err
		}
		return s.reply(msg.ID, s.handleCompletion(params), nil)
	default:
		return s.reply(msg.ID, nil, &RPCError{Code: -32601, Message: "method not found: " + msg.Method})
	}
}

func (s *LanguageServer) handleNotification(msg baseMessage) error {
	switch msg.Method {
	case "initialized":
		return nil
	case "textDocument/didOpen":
		var params DidOpenTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return err
		}
		return s.handleDidOpen(params)
	case "textDocument/didChange":
		var params DidChangeTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return err
		}
		return s.handleDidChange(params)
	case "textDocument/didClose":
		var params DidCloseTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return err
		}
		return s.handleDidClose(params)
	case "$/cancelRequest":
		// Every analyze run here is synchronous and already finished by the
		// time a cancellation could arrive; nothing to do but acknowledge.
		return nil
	case "exit":
		os.Exit(0)
		return nil
	default:
		return nil
	}
}

func (s *LanguageServer) reply(id interface{}, result interface{}, rpcErr *RPCError) error {
	return s.send(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: result, Error: rpcErr})
}

func (s *LanguageServer) notify(method string, params interface{}) error {
	return s.send(NotificationMessage{Jsonrpc: "2.0", Method: method, Params: params})
}

func (s *LanguageServer) send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(data), data)
	return err
}
