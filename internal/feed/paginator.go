// Package feed 实现 feed 的分页规则。
package feed

import (
	"strconv"
	"strings"
)

// PageSize 是每页的帖子数
const PageSize = 10

// Window 描述一页在结果集中的位置
type Window struct {
	Number   int // 实际页码，从 1 开始
	NumPages int // 总页数，至少为 1
	Offset   int
	Limit    int
}

// ParsePage 解析查询参数中的页码，缺失或不是整数时返回 1
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// NumPages 返回 total 条记录分成的页数，空结果也算一页
func NumPages(total int64, perPage int) int {
	if perPage <= 0 {
		perPage = PageSize
	}
	if total <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// Paginate 计算请求页对应的窗口。
// 页码小于 1 或超过最后一页时返回最后一页。
func Paginate(total int64, requested, perPage int) Window {
	if perPage <= 0 {
		perPage = PageSize
	}
	numPages := NumPages(total, perPage)
	number := requested
	if number < 1 || number > numPages {
		number = numPages
	}
	return Window{
		Number:   number,
		NumPages: numPages,
		Offset:   (number - 1) * perPage,
		Limit:    perPage,
	}
}
