package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client is a typed caller for the kiosk service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// ProcessWake calls the ProcessWake method.
func (c *Client) ProcessWake(ctx context.Context, req WakeRequest, opts ...grpc.CallOption) (Reply, error) {
	var out Reply
	err := c.call(ctx, MethodProcessWake, req, &out, opts...)
	return out, err
}

// ProcessBible calls the ProcessBible method.
func (c *Client) ProcessBible(ctx context.Context, req BibleRequest, opts ...grpc.CallOption) (Reply, error) {
	var out Reply
	err := c.call(ctx, MethodProcessBible, req, &out, opts...)
	return out, err
}

// ParseTranscript calls the ParseTranscript method.
func (c *Client) ParseTranscript(ctx context.Context, req BibleRequest, opts ...grpc.CallOption) (Reply, error) {
	var out Reply
	err := c.call(ctx, MethodParseTranscript, req, &out, opts...)
	return out, err
}

// LookupVerse calls the LookupVerse method.
func (c *Client) LookupVerse(ctx context.Context, req LookupRequest, opts ...grpc.CallOption) (Reply, error) {
	var out Reply
	err := c.call(ctx, MethodLookupVerse, req, &out, opts...)
	return out, err
}

// Synthesize calls the Synthesize method.
func (c *Client) Synthesize(ctx context.Context, req SynthesizeRequest, opts ...grpc.CallOption) (Reply, error) {
	var out Reply
	err := c.call(ctx, MethodSynthesize, req, &out, opts...)
	return out, err
}

// ResetStrikes calls the ResetStrikes method.
func (c *Client) ResetStrikes(ctx context.Context, opts ...grpc.CallOption) (Reply, error) {
	var out Reply
	err := c.callEmpty(ctx, MethodResetStrikes, &out, opts...)
	return out, err
}

// Info calls the Info method.
func (c *Client) Info(ctx context.Context, opts ...grpc.CallOption) (InfoReply, error) {
	var out InfoReply
	err := c.callEmpty(ctx, MethodInfo, &out, opts...)
	return out, err
}

func (c *Client) call(ctx context.Context, method string, req, out any, opts ...grpc.CallOption) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, resp, opts...); err != nil {
		return err
	}
	return fromStruct(resp, out)
}

func (c *Client) callEmpty(ctx context.Context, method string, out any, opts ...grpc.CallOption) error {
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, new(emptypb.Empty), resp, opts...); err != nil {
		return err
	}
	return fromStruct(resp, out)
}
