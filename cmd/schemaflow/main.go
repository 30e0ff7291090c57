// =============================================================================
// SchemaFlow 命令行入口
// =============================================================================
// 异常线格式工具，支持 Schema 导出、样例编码、报文解码与配置检查
//
// 使用方法:
//
//	schemaflow schema                          # 打印异常线格式的 JSON Schema
//	schemaflow schema --policy snake --pretty  # 指定命名策略与缩进输出
//	schemaflow encode --message "disk full"    # 生成样例异常报文
//	schemaflow decode --file payload.json      # 解码报文并打印异常链
//	schemaflow config --file config.yaml       # 校验并打印生效配置
//	schemaflow version                         # 显示版本信息
// =============================================================================

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BaSui01/schemaflow/config"
	"github.com/BaSui01/schemaflow/quick"
	"github.com/BaSui01/schemaflow/types"
)

// =============================================================================
// 📦 版本信息（构建时注入）
// =============================================================================

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// =============================================================================
// 🎯 主函数
// =============================================================================

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "schema":
		runSchema(os.Args[2:])
	case "encode":
		runEncode(os.Args[2:])
	case "decode":
		runDecode(os.Args[2:])
	case "config":
		runConfig(os.Args[2:])
	case "version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// =============================================================================
// 📐 schema 命令
// =============================================================================

func runSchema(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	policy := fs.String("policy", "", "Key naming policy (identity, camel, pascal, snake)")
	pretty := fs.Bool("pretty", false, "Indent the output")
	fs.Parse(args)

	opts := buildOptions(*configPath, *policy, *pretty)

	schema, err := quick.ErrorSchema(opts...)
	if err != nil {
		fatal("Failed to build schema: %v", err)
	}

	var data []byte
	if *pretty {
		data, err = json.MarshalIndent(schema, "", "  ")
	} else {
		data, err = schema.ToJSON()
	}
	if err != nil {
		fatal("Failed to render schema: %v", err)
	}

	fmt.Println(string(data))
}

// =============================================================================
// ✉️ encode 命令
// =============================================================================

func runEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	policy := fs.String("policy", "", "Key naming policy (identity, camel, pascal, snake)")
	pretty := fs.Bool("pretty", false, "Indent the output")
	message := fs.String("message", "", "Exception message (required)")
	source := fs.String("source", "", "Component the exception originates from")
	withStack := fs.Bool("stack", false, "Capture a stack trace at the encode site")
	var causes stringList
	fs.Var(&causes, "cause", "Cause message, outermost first (repeatable)")
	fs.Parse(args)

	if *message == "" {
		fatal("encode requires --message")
	}

	// 按由内到外的顺序串起因果链
	var cause *types.Exception
	for i := len(causes) - 1; i >= 0; i-- {
		c := types.FromError(errors.New(causes[i]))
		if cause != nil {
			c.WithCause(cause)
		}
		cause = c
	}

	var exc *types.Exception
	if *withStack {
		exc = types.NewException(*message)
	} else {
		exc = types.FromError(errors.New(*message))
	}
	if *source != "" {
		exc.WithSource(*source)
	}
	if cause != nil {
		exc.WithCause(cause)
	}

	opts := buildOptions(*configPath, *policy, *pretty)
	data, err := quick.MarshalError(exc, opts...)
	if err != nil {
		fatal("Failed to encode exception: %v", err)
	}

	fmt.Println(string(data))
}

// =============================================================================
// 📬 decode 命令
// =============================================================================

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	policy := fs.String("policy", "", "Key naming policy (identity, camel, pascal, snake)")
	file := fs.String("file", "-", "Input file, - for stdin")
	fs.Parse(args)

	var (
		data []byte
		err  error
	)
	if *file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*file)
	}
	if err != nil {
		fatal("Failed to read input: %v", err)
	}

	opts := buildOptions(*configPath, *policy, false)
	exc, err := quick.DecodeError(data, opts...)
	if err != nil {
		fatal("Failed to decode exception: %v", err)
	}
	if exc == nil {
		fmt.Println("null")
		return
	}

	printChain(os.Stdout, exc)
}

// printChain 逐层打印异常链
func printChain(w io.Writer, exc *types.Exception) {
	indent := ""
	for current := exc; current != nil; {
		fmt.Fprintf(w, "%smessage: %s\n", indent, current.Message())
		if src := current.Source(); src != "" {
			fmt.Fprintf(w, "%ssource:  %s\n", indent, src)
		}
		if st := current.StackTrace(); st != "" {
			fmt.Fprintf(w, "%sstack:\n", indent)
			for _, line := range strings.Split(st, "\n") {
				fmt.Fprintf(w, "%s  %s\n", indent, line)
			}
		}

		cause := current.Cause()
		if cause == nil {
			return
		}
		fmt.Fprintf(w, "%scaused by:\n", indent)
		indent += "  "

		next, ok := cause.(*types.Exception)
		if !ok {
			fmt.Fprintf(w, "%smessage: %s\n", indent, cause.Error())
			return
		}
		current = next
	}
}

// =============================================================================
// 🔧 config 命令
// =============================================================================

func runConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	file := fs.String("file", "", "Path to config file")
	fs.Parse(args)

	loader := config.NewLoader()
	if *file != "" {
		loader = loader.WithConfigPath(*file)
	}

	cfg, err := loader.Load()
	if err != nil {
		fatal("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		fatal("Invalid config: %v", err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fatal("Failed to render config: %v", err)
	}

	fmt.Print(string(out))
}

// =============================================================================
// 📋 版本和帮助
// =============================================================================

func printVersion() {
	fmt.Printf("SchemaFlow %s\n", Version)
	fmt.Printf("  Build Time: %s\n", BuildTime)
	fmt.Printf("  Git Commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`SchemaFlow - Exception Wire Format Toolkit

Usage:
  schemaflow <command> [options]

Commands:
  schema    Print the JSON Schema of the exception wire format
  encode    Build a sample exception payload from flags
  decode    Decode a payload and print the exception chain
  config    Resolve, validate and print the effective configuration
  version   Show version information
  help      Show this help message

Options for 'schema':
  --config <path>   Path to configuration file (YAML)
  --policy <kind>   Key naming policy (identity, camel, pascal, snake)
  --pretty          Indent the output

Options for 'encode':
  --message <text>  Exception message (required)
  --source <name>   Originating component
  --cause <text>    Cause message, outermost first (repeatable)
  --stack           Capture a stack trace at the encode site
  --config, --policy, --pretty as above

Options for 'decode':
  --file <path>     Input file, - for stdin (default -)
  --config, --policy as above

Options for 'config':
  --file <path>     Path to configuration file (YAML)

Examples:
  schemaflow schema --policy snake --pretty
  schemaflow encode --message "disk full" --source storage --cause "io timeout"
  cat payload.json | schemaflow decode
  schemaflow config --file /etc/schemaflow/config.yaml
  schemaflow version`)
}

// =============================================================================
// 🧰 辅助
// =============================================================================

// stringList 实现可重复传入的字符串 flag
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// buildOptions 将命令行参数转换为 quick 选项，显式参数覆盖配置文件
func buildOptions(configPath, policy string, pretty bool) []quick.Option {
	var opts []quick.Option
	if configPath != "" {
		opts = append(opts, quick.WithConfigFile(configPath))
	}
	if policy != "" {
		opts = append(opts, quick.WithPolicyKind(policy))
	}
	if pretty {
		opts = append(opts, quick.WithIndent("  "))
	}
	return opts
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
