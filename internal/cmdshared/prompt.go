package cmdshared

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/leocov-dev/launchwiz/internal/shared"
)

// PromptYesNo asks a yes/no question; an empty answer or non-interactive mode gives def
func PromptYesNo(prompt string, def bool) bool {
	fmt.Print(prompt)
	if viper.GetBool("non-interactive") {
		if def {
			fmt.Println("Y (non-interactive mode)")
		} else {
			fmt.Println("N (non-interactive mode)")
		}
		return def
	}
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		shared.Exitf("Failed to prompt user: %v\n", err)
	}

	ansNormal := strings.ToLower(strings.TrimSpace(answer))
	if len(ansNormal) == 0 {
		return def
	}
	return ansNormal[0] == 'y'
}
