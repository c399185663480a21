package env

import (
	"log"
	"os"
	"reflect"
	"strconv"

	"github.com/joho/godotenv"
)

// values maps one-to-one onto environment variables: the struct field name
// is the variable name. The default tag applies when the variable is unset
// so every binary can share this block.
type values struct {
	SERVER_ADDR string `default:"0.0.0.0"`
	SERVER_PORT int    `default:"8081"`

	PORTAL_ADDR     string `default:"0.0.0.0"`
	PORTAL_PORT     int    `default:"8080"`
	INTEGRATION_URL string `default:"http://localhost:8081"`

	REDIS_ADDR string `default:"localhost:6379"`

	CORE_BANKING_URL string `default:"http://localhost:9001"`
	FRAUD_URL        string `default:"http://localhost:9002"`
	AML_URL          string `default:"http://localhost:9003"`
	CRM_URL          string `default:"http://localhost:9004"`
	NOTIFICATION_URL string `default:"http://localhost:9005"`

	BACKEND_TIMEOUT_MS  int  `default:"12000"`
	NOTIFY_WORKER_POOL  int  `default:"4"`
	NOTIFY_QUEUE_SIZE   int  `default:"256"`
	RECORD_QUEUE_SIZE   int  `default:"1024"`
	HEALTH_INTERVAL_MS  int  `default:"5500"`
	TRAFFIC_GEN_ENABLED bool `default:"true"`

	BACKEND_BASE_PORT int     `default:"9001"`
	SLOW_QUERY_RATE   float64 `default:"0.10"`
	KYC_MATCH_RATE    float64 `default:"0.02"`
	FRAUD_FLAG_RATE   float64 `default:"0.05"`

	KIBANA_URL     string `default:"http://localhost:5601"`
	KIBANA_API_KEY string `default:""`
}

var Values = &values{}

// Load reads .env when present, then fills Values from the environment by
// reflection, falling back to each field's default tag.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	v := reflect.ValueOf(Values).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		raw, ok := os.LookupEnv(fieldType.Name)
		if !ok {
			raw = fieldType.Tag.Get("default")
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)

		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			intValue, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				log.Printf("Could not parse %q as int for %s", raw, fieldType.Name)
				continue
			}
			field.SetInt(intValue)

		case reflect.Bool:
			boolValue, err := strconv.ParseBool(raw)
			if err != nil {
				log.Printf("Could not parse %q as bool for %s", raw, fieldType.Name)
				continue
			}
			field.SetBool(boolValue)

		case reflect.Float32, reflect.Float64:
			floatValue, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				log.Printf("Could not parse %q as float for %s", raw, fieldType.Name)
				continue
			}
			field.SetFloat(floatValue)
		}
	}
}

func ShowEnvValues() {
	log.SetPrefix("Env: ")
	log.SetFlags(0)
	defer log.SetPrefix("")
	defer log.SetFlags(log.LstdFlags)
	defer log.Println("---------------------------------------------------------------------------------------------")

	log.Println("---------------------------------------------------------------------------------------------")
	v := reflect.ValueOf(Values).Elem()
	t := v.Type()

	maxLength := 0
	for i := 0; i < t.NumField(); i++ {
		if len(t.Field(i).Name) > maxLength {
			maxLength = len(t.Field(i).Name)
		}
	}

	format := "%-" + strconv.Itoa(maxLength) + "s: %v"
	for i := 0; i < v.NumField(); i++ {
		log.Printf(format, t.Field(i).Name, v.Field(i).Interface())
	}
}
