// Command shengjictl runs the rules engine RPC handlers without a Nakama
// server.
//
//	shengjictl [flags] <rpc> [request.json|-]
//
// The response is written to stdout. Logs and analytics events go to stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"shengji/internal/config"
	"shengji/internal/ports/nakama"
	"shengji/internal/ports/zlog"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// protojsonSink prints events as protojson lines.
type protojsonSink struct {
	w io.Writer
}

func (s protojsonSink) Emit(ctx context.Context, name string, properties map[string]string) error {
	out, err := protojson.Marshal(&api.Event{
		Name:       name,
		Properties: properties,
		Timestamp:  timestamppb.Now(),
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.w, string(out))
	return err
}

func loadConfig(v *viper.Viper) (config.EngineConfig, error) {
	cfg := config.Defaults()
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	}
	for _, key := range []string{
		"rules_token_secret",
		"rules_token_issuer",
		"rules_token_ttl_seconds",
		"zstd_dict_path",
		"explain_cache_size",
		"explain_cache_ttl_seconds",
	} {
		if err := v.BindEnv(key); err != nil {
			return cfg, err
		}
	}
	hooks := mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(hooks)); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func readPayload(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(args[0])
	return string(data), err
}

func run() error {
	flags := pflag.NewFlagSet("shengjictl", pflag.ContinueOnError)
	flags.String("config", "", "engine config file (json, yaml or toml)")
	flags.String("log-level", "info", "log level")
	flags.String("user-id", "", "user id passed to handlers")
	flags.Bool("list", false, "list rpc ids and exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix("shengji")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()
	logger := zlog.New(zl)

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	module, err := nakama.NewModuleFromConfig(cfg, protojsonSink{w: os.Stderr})
	if err != nil {
		return err
	}
	defer module.Close()

	if v.GetBool("list") {
		for _, id := range module.RpcIDs() {
			fmt.Println(id)
		}
		return nil
	}

	args := flags.Args()
	if len(args) == 0 {
		return fmt.Errorf("usage: shengjictl [flags] <rpc> [request.json|-]")
	}
	payload, err := readPayload(args[1:])
	if err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}

	ctx := context.Background()
	if userID := v.GetString("user-id"); userID != "" {
		ctx = context.WithValue(ctx, runtime.RUNTIME_CTX_USER_ID, userID)
	}
	out, err := module.Call(ctx, logger, args[0], payload)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "shengjictl:", err)
		os.Exit(1)
	}
}
