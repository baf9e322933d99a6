// Copyright (c) 2025 BVK Chaitanya

package monitor

import (
	"context"
	"net/http"

	"github.com/pricemon/pricemon/api"
	"github.com/pricemon/pricemon/httputil"
)

// HandlerMap returns the monitor's HTTP endpoints keyed by their url path.
func (s *Service) HandlerMap() map[string]http.Handler {
	return map[string]http.Handler{
		api.StatusPath:          httputil.PostJSONHandler(s.doStatus),
		api.MonitorStartPath:    httputil.PostJSONHandler(s.doStart),
		api.MonitorStopPath:     httputil.PostJSONHandler(s.doStop),
		api.MonitorCheckNowPath: httputil.PostJSONHandler(s.doCheckNow),
		api.MonitorUpdatesPath:  http.HandlerFunc(s.serveUpdates),
		api.ConfigGetPath:       httputil.PostJSONHandler(s.doConfigGet),
		api.ConfigUpdatePath:    httputil.PostJSONHandler(s.doConfigUpdate),
		api.ProductAddPath:      httputil.PostJSONHandler(s.doProductAdd),
		api.ProductListPath:     httputil.PostJSONHandler(s.doProductList),
		api.ProductUpdatePath:   httputil.PostJSONHandler(s.doProductUpdate),
		api.ProductDeletePath:   httputil.PostJSONHandler(s.doProductDelete),
		api.HistoryGetPath:      httputil.PostJSONHandler(s.doHistoryGet),
	}
}

func (s *Service) doStart(ctx context.Context, req *api.MonitorStartRequest) (*api.MonitorStartResponse, error) {
	state, err := s.Start(ctx)
	if err != nil {
		return nil, err
	}
	return &api.MonitorStartResponse{State: state}, nil
}

func (s *Service) doStop(ctx context.Context, req *api.MonitorStopRequest) (*api.MonitorStopResponse, error) {
	state, err := s.Stop(ctx)
	if err != nil {
		return nil, err
	}
	return &api.MonitorStopResponse{State: state}, nil
}

func (s *Service) doCheckNow(ctx context.Context, req *api.MonitorCheckNowRequest) (*api.MonitorCheckNowResponse, error) {
	results := s.CheckAll(ctx)
	return &api.MonitorCheckNowResponse{Results: results}, nil
}

func (s *Service) doConfigGet(ctx context.Context, req *api.ConfigGetRequest) (*api.ConfigGetResponse, error) {
	return &api.ConfigGetResponse{Config: s.Config()}, nil
}

func (s *Service) doConfigUpdate(ctx context.Context, req *api.ConfigUpdateRequest) (*api.ConfigUpdateResponse, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	c, err := s.UpdateConfig(req.CheckIntervalMinutes, req.Email, req.Desktop)
	if err != nil {
		return nil, err
	}
	return &api.ConfigUpdateResponse{Config: c}, nil
}

func (s *Service) doProductAdd(ctx context.Context, req *api.ProductAddRequest) (*api.ProductAddResponse, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	index, total, err := s.AddProduct(req.Product())
	if err != nil {
		return nil, err
	}
	return &api.ProductAddResponse{Index: index, TotalProducts: total}, nil
}

func (s *Service) doProductList(ctx context.Context, req *api.ProductListRequest) (*api.ProductListResponse, error) {
	return &api.ProductListResponse{Products: s.Products()}, nil
}

func (s *Service) doProductUpdate(ctx context.Context, req *api.ProductUpdateRequest) (*api.ProductUpdateResponse, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	p, err := s.UpdateProduct(req.Index, req.Name, req.URL, req.TargetPrice)
	if err != nil {
		return nil, err
	}
	return &api.ProductUpdateResponse{Product: p}, nil
}

func (s *Service) doProductDelete(ctx context.Context, req *api.ProductDeleteRequest) (*api.ProductDeleteResponse, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	total, err := s.DeleteProduct(req.Index)
	if err != nil {
		return nil, err
	}
	return &api.ProductDeleteResponse{TotalProducts: total}, nil
}

func (s *Service) doHistoryGet(ctx context.Context, req *api.HistoryGetRequest) (*api.HistoryGetResponse, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	return &api.HistoryGetResponse{History: s.History(req.URL, req.Limit)}, nil
}
