package gallery

var builtin = []Decoration{
	{Name: "imgs/1.gif", Art: "(ﾉ◕ヮ◕)ﾉ*:･ﾟ✧"},
	{Name: "imgs/2.gif", Art: "♪ ┏(・o･)┛ ♪"},
	{Name: "imgs/3.gif", Art: "ヾ(⌐■_■)ノ♪"},
	{Name: "imgs/4.gif", Art: "(づ｡◕‿‿◕｡)づ"},
	{Name: "imgs/5.gif", Art: "♬ ♪ ᕕ( ᐛ )ᕗ"},
	{Name: "imgs/6.gif", Art: "(☞ﾟヮﾟ)☞ ♫"},
	{Name: "imgs/7.gif", Art: "ʕ•ᴥ•ʔ ♪"},
	{Name: "imgs/8.gif", Art: "(～￣▽￣)～"},
	{Name: "imgs/9.gif", Art: "♡( ◡‿◡ )"},
	{Name: "imgs/10.gif", Art: "┌(・。・)┘♪"},
	{Name: "imgs/11.gif", Art: "(ﾉ´ヮ`)ﾉ*: ･ﾟ"},
	{Name: "imgs/12.gif", Art: "♪～(´ε｀ )"},
	{Name: "imgs/13.gif", Art: "(っ˘ڡ˘ς) ♫"},
}
