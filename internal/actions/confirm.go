package actions

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm задает оператору вопрос и выполняет action только при согласии.
// Чтение блокирующее — аналог модального окна подтверждения.
// Возвращает true, если действие было выполнено.
func Confirm(in io.Reader, out io.Writer, message string, action func()) bool {
	fmt.Fprintf(out, "%s [y/N]: ", message)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да":
		action()
		return true
	}
	return false
}
