package signer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

func newExecutor(t *testing.T, handler http.HandlerFunc) farm.TransactionExecutor {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewExecutor(&ExecutorCfg{
		HttpClient: http.Client{},
		Url:        srv.URL,
		Timeout:    time.Second,
	})
}

func testTx() *farm.Transaction {
	tx := farm.NewTransaction("0xa11ce")
	coin := tx.Add(farm.Command{Op: farm.OpHarvest, Args: []farm.Argument{farm.Object("0xacc")}})
	tx.TransferObjects([]farm.Argument{coin}, "0xa11ce")
	return tx
}

func TestExecute(t *testing.T) {
	req := require.New(t)
	e := newExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPost, r.Method)
		req.Equal("/transactions", r.URL.Path)
		got := farm.Transaction{}
		req.NoError(json.NewDecoder(r.Body).Decode(&got))
		req.Equal([]farm.Op{farm.OpHarvest, farm.OpTransferObjects}, got.Ops())
		w.Write([]byte(`{"digest":"9xQ","status":"success"}`))
	})

	res, err := e.Execute(bCtx.Background(), testTx())
	req.NoError(err)
	req.Equal(domain.TxDigest("9xQ"), res.Digest)
	req.Equal(StatusSuccess, res.Status)
}

func TestExecuteFailureStatus(t *testing.T) {
	e := newExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"digest":"9xQ","status":"failure","error":"InsufficientGas"}`))
	})

	res, err := e.Execute(bCtx.Background(), testTx())
	require.ErrorIs(t, err, ErrExecutionFailed)
	require.Contains(t, err.Error(), "InsufficientGas")
	require.Equal(t, domain.TxDigest("9xQ"), res.Digest)
}

func TestExecuteIsNotRetried(t *testing.T) {
	var hits int32
	e := newExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := e.Execute(bCtx.Background(), testTx())
	require.ErrorIs(t, err, ErrStatusCodeNotOk)
	require.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
