package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/openvc/fundflow"
	"github.com/openvc/fundflow/docs"
	"github.com/openvc/fundflow/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expected from the expert
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			Analyse sentiment of user request, he is here primarily to understand his fund's distributions,
			multiples, and what the LPs and the GP are owed.
			If he is angry try to understand why, and seek for a clear user approval.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.

			The user will assume that you know about his fund's terms and cash flows, checked the fund record first to understand them.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the market analyst expert, grounded by search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert venture analyst,
		very well aware of the venture capital industry, fund structures,
		and the latest news about funds, portfolio companies and exits.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in Venture Capital, you can search and find about anything related to
			funds, portfolio companies, exits and markets. You leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewController creates the fund controller expert, armed with the fund
// record tools.
func NewController() *Expert {

	lib := []Function{Waterfall, Statement, Schedule}

	return &Expert{
		Name: "Controller",
		Description: `This is the fund Controller. He is in charge of reading the fund record.
		He can run the distribution waterfall and compute the relevant figures about the fund's economics.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the controller in charge of the user's fund record.
				You know how to use the Tools to extract relevant information about the fund's cash flows and economics.
				You are part of a team of experts, yours is everything about the user's fund. They might ask
				you questions about the fund, pardon their approximative language and figure out what they meant.

				Use the available tools to get information about the user's fund
				  - the distribution waterfall and who gets what
				  - the capital account statement with DPI, TVPI and net IRR
				  - the schedule of capital calls and exits
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// The following implementation is not scalable, it will do it for the MVP not further.

// Waterfall runs the distribution waterfall over the fund record.
var Waterfall = &Func{

	Decl: &genai.FunctionDeclaration{
		Name: "Waterfall",
		Description: `Waterfall runs the fund's distribution waterfall and renders it.

		It details, exit by exit, how each distribution splits between LP capital return,
		LP profit, GP carried interest and recycling, and ends with the fund totals.
		`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted report of the fund's distribution waterfall, one table line per exit event, with the fund totals at the end.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		fund, err := DecodeFund()
		if err != nil {
			return errorResponse(id, "Waterfall", err)
		}
		var b bytes.Buffer
		renderer.WaterfallMarkdown(&b, fund)
		return &genai.FunctionResponse{
			ID:   id,
			Name: "Waterfall",
			Response: map[string]any{
				"output": b.String(),
			},
		}
	},
}

// Statement renders the capital account statement.
var Statement = &Func{

	Decl: &genai.FunctionDeclaration{
		Name: "Statement",
		Description: `Statement renders the fund's capital account statement.

		It sums up committed and paid-in capital, distributions, recycling, the headline
		multiples DPI and TVPI, the net IRR and the GP carry position.
		`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"quarter": {
					Type: genai.TypeString,
					Description: `The fund quarter the statement reports through. The fund's last quarter is the default.
					Otherwise it uses the fund quarter format:

					` + must(docs.GetTopic("quarters")),
				},
			},
			// Required: []string{"quarter"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted capital account statement for the fund.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		through, err := parseQuarter(args)
		if err != nil {
			return errorResponse(id, "Statement", err)
		}
		fund, err := DecodeFund()
		if err != nil {
			return errorResponse(id, "Statement", err)
		}
		st := renderer.NewStatement(fund, through)
		return &genai.FunctionResponse{
			ID:   id,
			Name: "Statement",
			Response: map[string]any{
				"output": renderer.RenderStatement(st, renderer.StatementRenderOptions{}),
			},
		}
	},
}

// Schedule renders the fund's cash flow schedule.
var Schedule = &Func{

	Decl: &genai.FunctionDeclaration{
		Name: "Schedule",
		Description: `Schedule lists the fund's cash flows.

		It details the capital calls with their running totals, and the exit events
		with their gross proceeds.
		`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of all capital calls and exit events in the fund record.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		fund, err := DecodeFund()
		if err != nil {
			return errorResponse(id, "Schedule", err)
		}
		return &genai.FunctionResponse{
			ID:   id,
			Name: "Schedule",
			Response: map[string]any{
				"output": renderer.ScheduleMarkdown(fund),
			},
		}
	},
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

// DecodeFund decodes the fund from the application's default fund file.
// If the file does not exist, it returns a new empty fund.
func DecodeFund() (*fundflow.Fund, error) {
	fundFile := "fund.jsonl"
	// temp
	f, err := os.Open(fundFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// If the file doesn't exist, it's an empty fund.
			return fundflow.NewFund(), nil
		}
		return nil, fmt.Errorf("could not open fund file %q: %w", fundFile, err)
	}
	defer f.Close()

	fund, err := fundflow.DecodeFund(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode fund file %q: %w", fundFile, err)
	}
	return fund, nil
}

func parseQuarter(args map[string]any) (fundflow.Quarter, error) {
	iquarter, hasQuarter := args["quarter"]
	if !hasQuarter {
		return 0, nil
	}
	squarter, ok := iquarter.(string)
	if !ok {
		return 0, fmt.Errorf("argument 'quarter' is not a string as expected but %T", iquarter)
	}

	q, err := fundflow.ParseQuarter(squarter)
	if err != nil {
		return 0, fmt.Errorf("argument 'quarter' must be a valid fund quarter got %q. Below is the doc about the quarter format\n\n%s ", squarter, must(docs.GetTopic("quarters")))
	}

	return q, nil
}
