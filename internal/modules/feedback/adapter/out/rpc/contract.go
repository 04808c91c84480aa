package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "sound"
	serviceName       = "vclock.sound.v1.SoundPlayer"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodPlay        = "/" + serviceName + "/Play"
	methodStop        = "/" + serviceName + "/Stop"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "VCLOCK_SOUND_PLUGIN",
	MagicCookieValue: "vclock",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Formats []string `json:"formats"`
}

type PlayRequest struct {
	Sound  string  `json:"sound"`
	Loop   bool    `json:"loop"`
	Volume float64 `json:"volume"`
}

// PlayResponse.Blocked reports that the device refused to start playback,
// for example because no audio output is attached.
type PlayResponse struct {
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason"`
}

type SoundPlayerServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Play(ctx context.Context, in *PlayRequest) (*PlayResponse, error)
	Stop(ctx context.Context, in *Empty) (*Empty, error)
}

type SoundPlayerClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Play(ctx context.Context, in *PlayRequest) (*PlayResponse, error)
	Stop(ctx context.Context) error
}

type soundPlayerClient struct {
	conn *grpc.ClientConn
}

func NewSoundPlayerClient(conn *grpc.ClientConn) SoundPlayerClient {
	return &soundPlayerClient{conn: conn}
}

func (c *soundPlayerClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *soundPlayerClient) Play(ctx context.Context, in *PlayRequest) (*PlayResponse, error) {
	out := &PlayResponse{}
	if err := c.conn.Invoke(ctx, methodPlay, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *soundPlayerClient) Stop(ctx context.Context) error {
	return c.conn.Invoke(ctx, methodStop, &Empty{}, &Empty{}, grpc.CallContentSubtype(jsonCodecName))
}

func unary[Req any](method string, call func(ctx context.Context, in *Req) (any, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterSoundPlayerServer(server grpc.ServiceRegistrar, impl SoundPlayerServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*SoundPlayerServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: unary(methodGetMetadata, func(ctx context.Context, in *Empty) (any, error) {
					return impl.GetMetadata(ctx, in)
				}),
			},
			{
				MethodName: "Play",
				Handler: unary(methodPlay, func(ctx context.Context, in *PlayRequest) (any, error) {
					return impl.Play(ctx, in)
				}),
			},
			{
				MethodName: "Stop",
				Handler: unary(methodStop, func(ctx context.Context, in *Empty) (any, error) {
					return impl.Stop(ctx, in)
				}),
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/sound-player-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl SoundPlayerServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterSoundPlayerServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewSoundPlayerClient(conn), nil
}

func PluginMap(impl SoundPlayerServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
