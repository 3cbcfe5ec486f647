package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kjunlab/authfront/internal/observability/logger"
)

const msgTitanicFetchFailed = "데이터를 불러오는데 실패했습니다."

// Passenger is one row of the titanic top-10 data view. Age and Cabin
// are nullable in the upstream data.
type Passenger struct {
	Rank        int      `json:"rank"`
	PassengerID int      `json:"passengerId"`
	Name        string   `json:"name"`
	Survived    string   `json:"survived"`
	Pclass      string   `json:"pclass"`
	Sex         string   `json:"sex"`
	Age         *float64 `json:"age"`
	Fare        float64  `json:"fare"`
	Cabin       *string  `json:"cabin"`
}

type titanicResponse struct {
	Success bool        `json:"success"`
	Data    []Passenger `json:"data"`
	Error   string      `json:"error"`
}

// TitanicTop10 fetches the read-only top-10-by-fare list. Outside the
// session pipeline; kept for completeness of the gateway boundary.
func (c *Client) TitanicTop10(ctx context.Context) ([]Passenger, error) {
	log := logger.From(ctx).With(logger.Layer("gateway"), logger.Op("TitanicTop10"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/titanic/top10", nil)
	if err != nil {
		return nil, wrap(KindNetworkUnreachable, msgServerConnectionFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("gateway unreachable", logger.Err(err))
		return nil, wrap(KindNetworkUnreachable, msgServerConnectionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindLoginFailed, Message: msgTitanicFetchFailed}
	}

	var result titanicResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, wrap(KindLoginFailed, msgTitanicFetchFailed, err)
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = msgTitanicFetchFailed
		}
		return nil, &Error{Kind: KindLoginFailed, Message: msg}
	}
	if result.Data == nil {
		return nil, fmt.Errorf("titanic response missing data")
	}
	return result.Data, nil
}
