package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/heyeunseok/scripture-kiosk/internal/interaction"
	"github.com/heyeunseok/scripture-kiosk/internal/kiosk"
	"github.com/heyeunseok/scripture-kiosk/internal/kioskinfo"
	"github.com/heyeunseok/scripture-kiosk/internal/scripture"
)

// RequestIDHeader is the incoming metadata key honoured as the request ID.
const RequestIDHeader = "x-request-id"

// Server implements KioskServer on top of a kiosk.Service.
type Server struct {
	svc *kiosk.Service
	log *slog.Logger
}

var _ KioskServer = (*Server)(nil)

// New returns a new Server instance.
func New(svc *kiosk.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if svc == nil {
		panic("server: service must not be nil")
	}
	return &Server{
		svc: svc,
		log: logger.With("component", "server"),
	}
}

// ProcessWake evaluates a transcript for the wake word and reacts to the
// speaker label.
func (s *Server) ProcessWake(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req WakeRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if _, ok := in.GetFields()["transcript"]; !ok {
		return nil, status.Error(codes.InvalidArgument, "transcript is required")
	}

	requestID := requestIDFrom(ctx)
	resp := s.svc.ProcessWake(ctx, requestID, req.Transcript, interaction.ParseSpeaker(req.Speaker), req.Confidence)
	return s.reply(resp)
}

// ProcessBible resolves a transcript to a passage.
func (s *Server) ProcessBible(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeBible(in)
	if err != nil {
		return nil, err
	}
	resp := s.svc.ProcessBible(ctx, requestIDFrom(ctx), req.Transcript)
	return s.reply(resp)
}

// ParseTranscript runs the resolver without telemetry or synthesis.
func (s *Server) ParseTranscript(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeBible(in)
	if err != nil {
		return nil, err
	}

	requestID := requestIDFrom(ctx)
	ref, text, rerr := s.svc.Resolve(req.Transcript)
	out := Reply{
		RequestID:  requestID,
		Transcript: req.Transcript,
		Text:       text,
		Metadata:   s.metadata(requestID),
	}
	if !errors.Is(rerr, scripture.ErrNoBookMatched) && !errors.Is(rerr, scripture.ErrInsufficientNumerals) {
		out.Reference = &ref
		out.Book = scripture.BookName(ref.Book)
	}
	if rerr != nil {
		out.Error = rerr.Error()
	}
	s.log.Debug("transcript parsed", "request_id", requestID, "transcript", req.Transcript, "error", rerr)
	return toStruct(out)
}

// LookupVerse reads verses for a spoken book name and explicit numbers.
func (s *Server) LookupVerse(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req LookupRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if strings.TrimSpace(req.Book) == "" {
		return nil, status.Error(codes.InvalidArgument, "book is required")
	}

	requestID := requestIDFrom(ctx)
	ref, text, err := s.svc.LookupVerse(req.Book, req.Chapter, req.Verse, req.VerseEnd)
	out := Reply{
		RequestID: requestID,
		Text:      text,
		Metadata:  s.metadata(requestID),
	}
	if !errors.Is(err, scripture.ErrNoBookMatched) && !errors.Is(err, scripture.ErrDataNotLoaded) {
		out.Reference = &ref
		out.Book = scripture.BookName(ref.Book)
	}
	if err != nil {
		out.Error = err.Error()
	}
	return toStruct(out)
}

// Synthesize speaks arbitrary text. A synthesizer that yields no audio is an
// Internal error carrying kiosk.SynthesisFailedText.
func (s *Server) Synthesize(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SynthesizeRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, status.Error(codes.InvalidArgument, "text is required")
	}

	requestID := requestIDFrom(ctx)
	audio, err := s.svc.Synthesize(ctx, requestID, req.Text)
	if err != nil {
		s.log.Error("synthesis failed", "request_id", requestID, "error", err)
		return nil, status.Error(codes.Internal, kiosk.SynthesisFailedText)
	}
	return toStruct(Reply{
		RequestID: requestID,
		Text:      req.Text,
		Audio:     audio,
		Metadata:  s.metadata(requestID),
	})
}

// ResetStrikes zeroes the strike counter.
func (s *Server) ResetStrikes(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	requestID := requestIDFrom(ctx)
	s.svc.ResetStrikes()
	s.log.Info("strike counter reset", "request_id", requestID)
	return toStruct(Reply{
		RequestID: requestID,
		Strikes:   s.svc.Strikes(),
		Metadata:  s.metadata(requestID),
	})
}

// Info reports corpus state, the strike count and cumulative telemetry.
func (s *Server) Info(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return toStruct(InfoReply{
		Service:   kioskinfo.Info.Slug,
		Version:   kioskinfo.Info.Version,
		Bible:     s.svc.Info(),
		Strikes:   s.svc.Strikes(),
		Telemetry: s.svc.Telemetry(),
	})
}

func (s *Server) reply(resp kiosk.Response) (*structpb.Struct, error) {
	out, err := toStruct(Reply{
		RequestID:  resp.RequestID,
		Speaker:    resp.Speaker,
		Confidence: resp.Confidence,
		Transcript: resp.Transcript,
		WakeWord:   resp.WakeWord,
		Text:       resp.Text,
		Audio:      resp.Audio,
		Action:     resp.Action,
		Reference:  resp.Reference,
		Strikes:    s.svc.Strikes(),
		Metadata:   s.metadata(resp.RequestID),
	})
	if err != nil {
		s.log.Error("failed to encode response", "request_id", resp.RequestID, "error", err)
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (s *Server) metadata(requestID string) map[string]string {
	return kioskinfo.ResponseMetadata(requestID, s.svc.Info().Digest)
}

func decodeBible(in *structpb.Struct) (BibleRequest, error) {
	var req BibleRequest
	if err := fromStruct(in, &req); err != nil {
		return req, status.Error(codes.InvalidArgument, err.Error())
	}
	if _, ok := in.GetFields()["transcript"]; !ok {
		return req, status.Error(codes.InvalidArgument, "transcript is required")
	}
	return req, nil
}

// requestIDFrom returns the caller-supplied request ID or a fresh UUID.
func requestIDFrom(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(RequestIDHeader); len(values) > 0 && strings.TrimSpace(values[0]) != "" {
			return strings.TrimSpace(values[0])
		}
	}
	return uuid.NewString()
}
