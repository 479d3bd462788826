// shoestock-cli 交互式库存菜单
//
//	shoestock-cli menu --config config/config.yaml
//	SHOESTOCK_STORAGE_BACKEND=sql shoestock-cli menu
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
