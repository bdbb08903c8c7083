package gemini

import (
	"context"

	"github.com/stretchr/testify/mock"
)

const (
	GenerateContentMethod = "GenerateContent"
)

// Ensure MockClient implements ClientIFace
var _ ClientIFace = (*MockClient)(nil)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) GenerateContent(ctx context.Context, apiKey string, req GenerateContentRequest) (*GenerateContentResponse, error) {
	args := m.Called(ctx, apiKey, req)
	if rsp := args.Get(0); rsp != nil {
		return rsp.(*GenerateContentResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

// NewTextResponse builds a single-candidate response holding text.
func NewTextResponse(text string) *GenerateContentResponse {
	return &GenerateContentResponse{
		Candidates: []Candidate{{
			Content: &Content{Role: "model", Parts: []Part{{Text: text}}},
		}},
	}
}
