// Package nodeclient implements the block feed's source interfaces over the
// node's JSON HTTP API.
package nodeclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/veilledger/veilsync/internal/chain"
)

const (
	defaultTimeout    = 30 * time.Second
	maxResponseBytes  = 64 << 20
	tipPath           = "/v1/tip"
	blocksPath        = "/v1/blocks"
	blockLogsPathTmpl = "/v1/blocks/%d/logs"
)

// Client talks to one node over HTTP. It satisfies the feed's BlockSource
// and the note service's LogSource.
type Client struct {
	base   *url.URL
	client *http.Client
	logger *zap.Logger
}

// NewClient builds a Client for the node at baseURL.
func NewClient(baseURL string, logger *zap.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("node url is required")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse node url: %w", err)
	}

	return &Client{
		base:   base,
		client: &http.Client{Timeout: defaultTimeout},
		logger: logger.Named("nodeclient"),
	}, nil
}

type tipResponse struct {
	Number uint64 `json:"number"`
}

type headerBody struct {
	NoteTreeNextIndex uint64 `json:"note_tree_next_index"`
	Timestamp         int64  `json:"timestamp"`
}

type txEffectBody struct {
	TxHash     string   `json:"tx_hash"`
	NoteHashes []string `json:"note_hashes"`
	Nullifiers []string `json:"nullifiers"`
}

type blockBody struct {
	Number uint64         `json:"number"`
	Header headerBody     `json:"header"`
	Body   []txEffectBody `json:"body"`
}

type blocksResponse struct {
	Blocks []blockBody `json:"blocks"`
}

type txLogsBody struct {
	Logs [][]byte `json:"logs"`
}

type logsResponse struct {
	Txs []txLogsBody `json:"txs"`
}

// LatestBlockNumber returns the node's current tip.
func (c *Client) LatestBlockNumber(ctx context.Context) (uint64, error) {
	var resp tipResponse
	if err := c.get(ctx, tipPath, nil, &resp); err != nil {
		return 0, fmt.Errorf("fetch tip: %w", err)
	}
	return resp.Number, nil
}

// GetBlocks returns up to limit finalized blocks starting at from.
func (c *Client) GetBlocks(ctx context.Context, from uint64, limit int) ([]chain.Block, error) {
	query := url.Values{
		"from":  []string{strconv.FormatUint(from, 10)},
		"limit": []string{strconv.Itoa(limit)},
	}

	var resp blocksResponse
	if err := c.get(ctx, blocksPath, query, &resp); err != nil {
		return nil, fmt.Errorf("fetch blocks from %d: %w", from, err)
	}

	blocks := make([]chain.Block, 0, len(resp.Blocks))
	for _, body := range resp.Blocks {
		block, err := decodeBlock(body)
		if err != nil {
			return nil, fmt.Errorf("decode block %d: %w", body.Number, err)
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// LogBatch returns the encrypted log batch accompanying the block.
func (c *Client) LogBatch(ctx context.Context, blockNumber uint64) (chain.EncryptedLogBatch, error) {
	var resp logsResponse
	if err := c.get(ctx, fmt.Sprintf(blockLogsPathTmpl, blockNumber), nil, &resp); err != nil {
		return chain.EncryptedLogBatch{}, fmt.Errorf("fetch logs for block %d: %w", blockNumber, err)
	}

	batch := chain.EncryptedLogBatch{Txs: make([]chain.TxLogs, 0, len(resp.Txs))}
	for _, tx := range resp.Txs {
		batch.Txs = append(batch.Txs, chain.TxLogs{Logs: tx.Logs})
	}
	return batch, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.base.JoinPath(path)
	if query != nil {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("close response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func decodeBlock(body blockBody) (chain.Block, error) {
	block := chain.Block{
		Number: body.Number,
		Header: chain.BlockHeader{
			NoteTreeNextIndex: body.Header.NoteTreeNextIndex,
			Timestamp:         time.Unix(body.Header.Timestamp, 0).UTC(),
		},
		Body: make([]chain.TxEffect, 0, len(body.Body)),
	}

	for _, tx := range body.Body {
		effect := chain.TxEffect{}
		hash, err := chainhash.NewHashFromStr(tx.TxHash)
		if err != nil {
			return chain.Block{}, fmt.Errorf("decode tx hash %q: %w", tx.TxHash, err)
		}
		effect.TxHash = *hash

		if effect.NoteHashes, err = decodeHashes(tx.NoteHashes); err != nil {
			return chain.Block{}, fmt.Errorf("decode note hashes of %s: %w", tx.TxHash, err)
		}
		if effect.Nullifiers, err = decodeHashes(tx.Nullifiers); err != nil {
			return chain.Block{}, fmt.Errorf("decode nullifiers of %s: %w", tx.TxHash, err)
		}
		block.Body = append(block.Body, effect)
	}
	return block, nil
}

func decodeHashes(encoded []string) ([]chainhash.Hash, error) {
	if len(encoded) == 0 {
		return nil, nil
	}
	hashes := make([]chainhash.Hash, 0, len(encoded))
	for _, e := range encoded {
		h, err := chainhash.NewHashFromStr(e)
		if err != nil {
			return nil, fmt.Errorf("decode hash %q: %w", e, err)
		}
		hashes = append(hashes, *h)
	}
	return hashes, nil
}
