package adk

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/user/qrisk-adk/pkg/logging"
)

// ErrTooManySteps is returned when the model keeps calling tools without answering
var ErrTooManySteps = errors.New("agent exceeded the tool call limit for one turn")

const defaultMaxSteps = 8

// Tool represents an executable action for the agent
type Tool interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error)
	Schema() map[string]interface{} // JSON schema for arguments
}

// ToolCall represents a request from the LLM to execute a tool
type ToolCall struct {
	ToolName string
	Args     map[string]interface{}
}

// Message represents a chat message
type Message struct {
	Role    string // "user", "model", "system", "function"
	Content string
}

// LLMProvider defines the interface for different AI models
type LLMProvider interface {
	GenerateResponse(ctx context.Context, history []Message, tools []Tool) (string, *ToolCall, error)
	ListModels(ctx context.Context) ([]string, error)
}

// Agent is the core ADK agent
type Agent struct {
	llm          LLMProvider
	tools        map[string]Tool
	history      []Message
	systemPrompt string
	maxSteps     int
}

// NewAgent creates a new agent with the given LLM provider
func NewAgent(llm LLMProvider) *Agent {
	return &Agent{
		llm:      llm,
		tools:    make(map[string]Tool),
		maxSteps: defaultMaxSteps,
	}
}

// RegisterTool adds a tool to the agent's registry
func (a *Agent) RegisterTool(t Tool) {
	a.tools[t.Name()] = t
}

// SetSystemPrompt replaces the system message at the head of the history
func (a *Agent) SetSystemPrompt(prompt string) {
	a.systemPrompt = prompt
	if len(a.history) > 0 && a.history[0].Role == "system" {
		a.history = a.history[1:]
	}
	if prompt != "" {
		a.history = append([]Message{{Role: "system", Content: prompt}}, a.history...)
	}
}

// SetMaxSteps bounds the number of tool calls per Chat turn
func (a *Agent) SetMaxSteps(n int) {
	if n > 0 {
		a.maxSteps = n
	}
}

// Reset clears the conversation but keeps the system prompt and tools
func (a *Agent) Reset() {
	a.history = nil
	a.SetSystemPrompt(a.systemPrompt)
}

// History returns a copy of the conversation so far
func (a *Agent) History() []Message {
	out := make([]Message, len(a.history))
	copy(out, a.history)
	return out
}

// Tools returns the registered tools sorted by name
func (a *Agent) Tools() []Tool {
	toolList := make([]Tool, 0, len(a.tools))
	for _, t := range a.tools {
		toolList = append(toolList, t)
	}
	sort.Slice(toolList, func(i, j int) bool { return toolList[i].Name() < toolList[j].Name() })
	return toolList
}

// Chat sends a message to the agent and returns the response
func (a *Agent) Chat(ctx context.Context, input string, progress func(string)) (string, error) {
	if progress == nil {
		progress = func(string) {}
	}
	a.history = append(a.history, Message{Role: "user", Content: input})
	toolList := a.Tools()

	for step := 0; step < a.maxSteps; step++ {
		respText, toolCall, err := a.llm.GenerateResponse(ctx, a.history, toolList)
		if err != nil {
			return "", err
		}

		// If the model just replied with text, we are done
		if toolCall == nil {
			a.history = append(a.history, Message{Role: "model", Content: respText})
			return respText, nil
		}

		logging.Debugf("Executing tool: %s with args: %v", toolCall.ToolName, toolCall.Args)

		// Record the model's intent to call the tool
		a.history = append(a.history, Message{
			Role:    "model",
			Content: fmt.Sprintf("I will call tool %s with args %v", toolCall.ToolName, toolCall.Args),
		})

		tool, exists := a.tools[toolCall.ToolName]
		if !exists {
			a.history = append(a.history, Message{Role: "function", Content: fmt.Sprintf("Error: Tool %s not found", toolCall.ToolName)})
			continue
		}

		progress(fmt.Sprintf("Running %s", toolCall.ToolName))
		result, err := tool.Execute(ctx, toolCall.Args, progress)
		if err != nil {
			logging.Warnf("Tool %s failed: %v", toolCall.ToolName, err)
			result = fmt.Sprintf("Error executing tool: %v", err)
		}

		a.history = append(a.history, Message{
			Role:    "function",
			Content: fmt.Sprintf("Tool %s returned: %s", toolCall.ToolName, result),
		})
	}
	return "", ErrTooManySteps
}
