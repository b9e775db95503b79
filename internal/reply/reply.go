// Package reply renders routed intents into outbound message text.
package reply

import (
	"fmt"

	"github.com/tkwang/quoteline/internal/intent"
	"github.com/tkwang/quoteline/internal/quote"
)

const usage = "指令用法：\n" +
	"查股價 <股票代號>\n" +
	"例如：查股價 AAPL\n" +
	"例如：查股價 2330.TW"

const missingSymbolHint = "請在「查股價」後面加上股票代號。\n"

// Compose renders an intent (and its quote result, for stock queries) into
// the reply text. Pure and total; template outputs are bounded well under the
// platform's message size limit by construction.
func Compose(in intent.Intent, q quote.Result) string {
	switch in.Kind {
	case intent.KindStockQuery:
		if !q.Available {
			return fmt.Sprintf("找不到 %s 的報價，請確認股票代號是否正確。", in.Symbol)
		}
		return fmt.Sprintf("📈 %s 最新價格：$%.2f", in.Symbol, q.Price)
	case intent.KindHelp:
		if in.MissingSymbol {
			return missingSymbolHint + usage
		}
		return usage
	default:
		return "你說了：" + in.Text
	}
}
