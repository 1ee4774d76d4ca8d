package nakama

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"shengji/internal/app"
	"shengji/internal/codec"
	"shengji/internal/domain"
	"shengji/internal/ports"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// RpcFunc is the Nakama RPC handler signature.
type RpcFunc func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error)

var ErrUnknownRpc = errors.New("unknown rpc")

// Module binds the rules engine to Nakama RPCs.
type Module struct {
	service      *app.Service
	decompressor *codec.Decompressor
	events       ports.EventSink
	handlers     map[string]RpcFunc
}

// NewModule wires service and decompressor behind RPC handlers. A nil
// decompressor decodes without a dictionary. events may be nil, in which case
// no analytics are emitted.
func NewModule(service *app.Service, decompressor *codec.Decompressor, events ports.EventSink) *Module {
	if decompressor == nil {
		decompressor = codec.NewDecompressor(nil)
	}
	m := &Module{
		service:      service,
		decompressor: decompressor,
		events:       events,
	}
	m.handlers = map[string]RpcFunc{
		RpcFindViablePlays:        m.findViablePlays(),
		RpcDecomposeTrickFormat:   m.decomposeTrickFormat(),
		RpcCanPlayCards:           m.canPlayCards(),
		RpcFindValidBids:          m.findValidBids(),
		RpcSortAndGroupCards:      m.sortAndGroupCards(),
		RpcNextThresholdReachable: m.nextThresholdReachable(),
		RpcExplainScoring:         m.explainScoring(),
		RpcComputeDeckLen:         m.computeDeckLen(),
		RpcComputeScore:           m.computeScore(),
		RpcZstdDecompress:         m.zstdDecompress(),
		RpcIssueRulesToken:        m.issueRulesToken(),
	}
	return m
}

// Close releases the decompressor. RPCs that decode zstd payloads fail
// afterwards; the rest keep working.
func (m *Module) Close() {
	m.decompressor.Close()
}

// RpcIDs lists the registered RPC ids in sorted order.
func (m *Module) RpcIDs() []string {
	ids := make([]string, 0, len(m.handlers))
	for id := range m.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RegisterRPCs registers every handler with Nakama.
func (m *Module) RegisterRPCs(initializer runtime.Initializer) error {
	for _, id := range m.RpcIDs() {
		if err := initializer.RegisterRpc(id, m.handlers[id]); err != nil {
			return fmt.Errorf("failed to register rpc %s: %w", id, err)
		}
	}
	return nil
}

// Call invokes the handler registered under id outside of Nakama.
func (m *Module) Call(ctx context.Context, logger runtime.Logger, id, payload string) (string, error) {
	h, ok := m.handlers[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRpc, id)
	}
	return h(ctx, logger, nil, nil, payload)
}

// handle decodes payload into the request built by newReq, runs call and
// encodes its response. Every successful call emits one event.
func handle[Req, Resp any](m *Module, id string, newReq func() Req, call func(ctx context.Context, logger runtime.Logger, req Req) (Resp, app.Event, error)) RpcFunc {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		requestID := uuid.NewString()
		logger = logger.WithField("request_id", requestID)

		req := newReq()
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			logger.Warn("%s: invalid payload: %v", id, err)
			return "", runtime.NewError(fmt.Sprintf("invalid payload: %v", err), codeInvalidArgument)
		}

		resp, ev, err := call(ctx, logger, req)
		if err != nil {
			logger.Warn("%s: %v", id, err)
			return "", toRuntimeError(err)
		}

		out, err := json.Marshal(resp)
		if err != nil {
			logger.Error("%s: failed to encode response: %v", id, err)
			return "", runtime.NewError("internal error", codeInternal)
		}

		m.emit(ctx, logger, requestID, ev)
		return string(out), nil
	}
}

func (m *Module) emit(ctx context.Context, logger runtime.Logger, requestID string, ev app.Event) {
	if m.events == nil {
		return
	}
	if err := m.events.Emit(ctx, eventName(ev.Kind), eventProperties(ev, requestID)); err != nil {
		logger.Warn("failed to emit event %s: %v", ev.Kind, err)
	}
}

// toRuntimeError maps oversized input to INVALID_ARGUMENT and every other
// engine error to FAILED_PRECONDITION.
func toRuntimeError(err error) error {
	if errors.Is(err, app.ErrTooManyCards) {
		return runtime.NewError(err.Error(), codeInvalidArgument)
	}
	return runtime.NewError(err.Error(), codeFailedPrecondition)
}

func isRulesTokenError(err error) bool {
	return errors.Is(err, app.ErrInvalidRulesToken) || errors.Is(err, app.ErrRulesTokensDisabled)
}

func (m *Module) findViablePlays() RpcFunc {
	return handle(m, RpcFindViablePlays,
		func() app.FindViablePlaysRequest { return app.FindViablePlaysRequest{} },
		func(ctx context.Context, logger runtime.Logger, req app.FindViablePlaysRequest) (app.FindViablePlaysResponse, app.Event, error) {
			resp, err := m.service.FindViablePlays(req)
			return resp, resp.Event(), err
		},
	)
}

func (m *Module) decomposeTrickFormat() RpcFunc {
	return handle(m, RpcDecomposeTrickFormat,
		func() app.DecomposeTrickFormatRequest { return app.DecomposeTrickFormatRequest{} },
		func(ctx context.Context, logger runtime.Logger, req app.DecomposeTrickFormatRequest) (app.DecomposeTrickFormatResponse, app.Event, error) {
			resp, err := m.service.DecomposeTrickFormat(req)
			return resp, resp.Event(), err
		},
	)
}

func (m *Module) canPlayCards() RpcFunc {
	return handle(m, RpcCanPlayCards,
		func() app.CanPlayCardsRequest { return app.CanPlayCardsRequest{} },
		func(ctx context.Context, logger runtime.Logger, req app.CanPlayCardsRequest) (app.CanPlayCardsResponse, app.Event, error) {
			resp, err := m.service.CanPlayCards(req)
			if err == nil && resp.Reason != nil {
				logger.Debug("play by %s rejected: %v", req.PlayerID, resp.Reason)
			}
			return resp, resp.Event(), err
		},
	)
}

// Bidding failures answer with an empty list. Only rules token problems are
// reported to the caller.
func (m *Module) findValidBids() RpcFunc {
	return handle(m, RpcFindValidBids,
		func() app.FindValidBidsRequest { return app.FindValidBidsRequest{} },
		func(ctx context.Context, logger runtime.Logger, req app.FindValidBidsRequest) (app.FindValidBidsResponse, app.Event, error) {
			resp, err := m.service.FindValidBids(req)
			if err != nil && !isRulesTokenError(err) {
				logger.Warn("find_valid_bids for %s: %v", req.PlayerID, err)
				err = nil
			}
			return resp, resp.Event(), err
		},
	)
}

func (m *Module) sortAndGroupCards() RpcFunc {
	return handle(m, RpcSortAndGroupCards,
		func() app.SortAndGroupCardsRequest { return app.SortAndGroupCardsRequest{} },
		func(ctx context.Context, logger runtime.Logger, req app.SortAndGroupCardsRequest) (app.SortAndGroupCardsResponse, app.Event, error) {
			resp, err := m.service.SortAndGroupCards(req)
			return resp, resp.Event(), err
		},
	)
}

func (m *Module) nextThresholdReachable() RpcFunc {
	return handle(m, RpcNextThresholdReachable,
		func() app.NextThresholdReachableRequest {
			return app.NextThresholdReachableRequest{Params: m.service.DefaultScoring()}
		},
		func(ctx context.Context, logger runtime.Logger, req app.NextThresholdReachableRequest) (bool, app.Event, error) {
			reachable, err := m.service.NextThresholdReachable(req)
			return reachable, app.ReachableEvent(reachable), err
		},
	)
}

func (m *Module) explainScoring() RpcFunc {
	return handle(m, RpcExplainScoring,
		func() app.ExplainScoringRequest {
			return app.ExplainScoringRequest{Params: m.service.DefaultScoring()}
		},
		func(ctx context.Context, logger runtime.Logger, req app.ExplainScoringRequest) (app.ExplainScoringResponse, app.Event, error) {
			resp, err := m.service.ExplainScoring(req)
			return resp, resp.Event(), err
		},
	)
}

func (m *Module) computeDeckLen() RpcFunc {
	return handle(m, RpcComputeDeckLen,
		func() []domain.Deck { return nil },
		func(ctx context.Context, logger runtime.Logger, decks []domain.Deck) (int, app.Event, error) {
			n := m.service.ComputeDeckLen(decks)
			return n, app.DeckLenEvent(n), nil
		},
	)
}

func (m *Module) computeScore() RpcFunc {
	return handle(m, RpcComputeScore,
		func() app.ComputeScoreRequest {
			return app.ComputeScoreRequest{Params: m.service.DefaultScoring()}
		},
		func(ctx context.Context, logger runtime.Logger, req app.ComputeScoreRequest) (app.ComputeScoreResponse, app.Event, error) {
			resp, err := m.service.ComputeScore(req)
			return resp, resp.Event(), err
		},
	)
}

type zstdDecompressRequest struct {
	// Data is base64 in JSON.
	Data []byte `json:"data"`
}

type zstdDecompressResponse struct {
	Text string `json:"text"`
}

func (m *Module) zstdDecompress() RpcFunc {
	return handle(m, RpcZstdDecompress,
		func() zstdDecompressRequest { return zstdDecompressRequest{} },
		func(ctx context.Context, logger runtime.Logger, req zstdDecompressRequest) (zstdDecompressResponse, app.Event, error) {
			text, err := m.decompressor.Decompress(req.Data)
			if err != nil {
				return zstdDecompressResponse{}, app.Event{}, err
			}
			return zstdDecompressResponse{Text: text}, app.DecompressedEvent(len(req.Data), len(text)), nil
		},
	)
}

func (m *Module) issueRulesToken() RpcFunc {
	return handle(m, RpcIssueRulesToken,
		func() app.GameRules { return app.GameRules{} },
		func(ctx context.Context, logger runtime.Logger, rules app.GameRules) (app.IssueRulesTokenResponse, app.Event, error) {
			userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
			resp, err := m.service.IssueRulesToken(userID, rules)
			if err == nil {
				logger.Info("issued rules token for user %s", userID)
			}
			return resp, resp.Event(), err
		},
	)
}
