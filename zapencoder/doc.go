// Package zapencoder provides a zapcore.Encoder that renders entries
// through formatter.JSONLayout, so zap loggers emit the same
// single-line JSON as any other host.
//
// Context fields added with Logger.With and per-call fields become the
// event's mapped context; the layout decides which keys are rendered.
// Two field keys are reserved for the thread name and nested context
// (see EncoderConfig). The entry's stack trace, when zap captured one,
// is rendered as the throwable.
//
//	layout := formatter.NewJSONLayout(formatter.Config{MDCKeys: []string{"user"}})
//	core := zapcore.NewCore(zapencoder.New(zapencoder.EncoderConfig{Layout: layout}), os.Stdout, zap.InfoLevel)
//	log := zap.New(core).Named("app")
package zapencoder
