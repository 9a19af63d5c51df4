package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/advisor/internal/models"
	"github.com/ternarybob/advisor/internal/router"
	"github.com/ternarybob/advisor/internal/services/marketdata"
	"github.com/ternarybob/advisor/internal/session"
)

type stubMarket struct{}

func (s *stubMarket) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	return &models.Quote{
		Symbol:        symbol,
		Price:         150.25,
		Change:        1.75,
		ChangePercent: "1.18",
		Volume:           1000000,
		LatestTradingDay: "2024-03-15",
	}, nil
}

func (s *stubMarket) GetOverview(ctx context.Context, symbol string) (*models.Overview, error) {
	return &models.Overview{Symbol: symbol, Name: symbol + " Inc"}, nil
}

func (s *stubMarket) GetNews(ctx context.Context, symbol string) ([]models.NewsItem, error) {
	return []models.NewsItem{{Title: "Headline", Sentiment: "Neutral"}}, nil
}

type stubAlt struct{}

func (s *stubAlt) GetCongressTrading(ctx context.Context, symbol string) ([]models.CongressTrade, error) {
	return nil, nil
}

func (s *stubAlt) GetInsiderTrading(ctx context.Context, symbol string) ([]models.InsiderTrade, error) {
	return nil, nil
}

func (s *stubAlt) GetSocialSentiment(ctx context.Context, symbol string) ([]models.SocialMention, error) {
	return nil, nil
}

func (s *stubAlt) GetLobbying(ctx context.Context, symbol string) ([]models.LobbyingActivity, error) {
	return nil, nil
}

func (s *stubAlt) GetGovContracts(ctx context.Context, symbol string) ([]models.GovContract, error) {
	return nil, nil
}

func (s *stubAlt) GetOffExchange(ctx context.Context, symbol string) ([]models.OffExchangeVolume, error) {
	return nil, nil
}

func (s *stubAlt) GetWikipediaViews(ctx context.Context, symbol string) ([]models.WikipediaViews, error) {
	return nil, nil
}

func newTestAskHandler(t *testing.T) (*AskHandler, *session.Store) {
	t.Helper()
	logger := arbor.NewLogger()
	qr := router.New(&stubMarket{}, &stubAlt{}, marketdata.NewTradingViewService(""), logger)
	sessions := session.NewStore()
	return NewAskHandler(qr, sessions, logger), sessions
}

func postAsk(t *testing.T, h *AskHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	h.AskHandler(w, req)
	return w
}

func TestAskHandler_PriceQuestion(t *testing.T) {
	h, _ := newTestAskHandler(t)

	w := postAsk(t, h, AskRequest{Question: "What is the price of AAPL?"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(models.ResponseTypePrice), resp.ResponseType)
	assert.Equal(t, "AAPL", resp.Symbol)
	assert.NotEmpty(t, resp.SessionID)
	assert.Contains(t, resp.Message, "$150.25")
}

func TestAskHandler_SessionContinuity(t *testing.T) {
	h, sessions := newTestAskHandler(t)

	first := postAsk(t, h, AskRequest{Question: "Will my TSLA $440 call be profitable if it expires 21 mar 2025?"})
	require.Equal(t, http.StatusOK, first.Code)

	var firstResp AskResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp))
	require.NotEmpty(t, firstResp.SessionID)

	sess := sessions.Get(firstResp.SessionID)
	require.NotNil(t, sess)
	assert.Equal(t, "TSLA", sess.OptionContext().Symbol)

	second := postAsk(t, h, AskRequest{
		Question:  "what are the chances it hits the strike price?",
		SessionID: firstResp.SessionID,
	})
	require.Equal(t, http.StatusOK, second.Code)

	var secondResp AskResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondResp))
	assert.Equal(t, firstResp.SessionID, secondResp.SessionID)
	assert.Equal(t, "TSLA", secondResp.Symbol)
}

func TestAskHandler_Validation(t *testing.T) {
	h, _ := newTestAskHandler(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{"empty question", AskRequest{Question: ""}},
		{"bad session id", AskRequest{Question: "price of AAPL", SessionID: "not-a-uuid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postAsk(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAskHandler_InvalidBody(t *testing.T) {
	h, _ := newTestAskHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	h.AskHandler(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskHandler_MethodNotAllowed(t *testing.T) {
	h, _ := newTestAskHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ask", nil)
	w := httptest.NewRecorder()
	h.AskHandler(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
