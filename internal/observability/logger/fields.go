package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos estándar HTTP.

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field { return zap.String("request_id", v) }

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field { return zap.String("method", v) }

// Path crea un campo para el path del request.
func Path(v string) zap.Field { return zap.String("path", v) }

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field { return zap.Int("status", v) }

// DurationMs crea un campo para la duración en milisegundos.
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }

// Duration crea un campo para la duración del request.
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// Bytes crea un campo para los bytes de respuesta.
func Bytes(v int) zap.Field { return zap.Int("bytes", v) }

// Campos estándar de negocio.

// Provider crea un campo para el proveedor social (kakao/naver/google).
func Provider(v string) zap.Field { return zap.String("provider", v) }

// Endpoint crea un campo para el endpoint del gateway.
func Endpoint(v string) zap.Field { return zap.String("endpoint", v) }

// Key crea un campo para una key de almacenamiento.
func Key(v string) zap.Field { return zap.String("key", v) }

// Campos estándar de sistema.

// Component crea un campo para el componente/módulo.
func Component(v string) zap.Field { return zap.String("component", v) }

// Op crea un campo para la operación actual.
func Op(v string) zap.Field { return zap.String("op", v) }

// Layer crea un campo para la capa (controller, service, store).
func Layer(v string) zap.Field { return zap.String("layer", v) }

// Err crea un campo para un error.
func Err(err error) zap.Field { return zap.Error(err) }

// String re-exporta zap.String para no importar zap en los call sites.
func String(k, v string) zap.Field { return zap.String(k, v) }

// Int re-exporta zap.Int.
func Int(k string, v int) zap.Field { return zap.Int(k, v) }

// Bool re-exporta zap.Bool.
func Bool(k string, v bool) zap.Field { return zap.Bool(k, v) }
